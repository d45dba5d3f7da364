package models

// The rad* models map to the standard FreeRADIUS SQL schema. Column names
// and casing follow the schema shipped with FreeRADIUS, not gorm defaults.

type RadCheckModel struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Username  string `gorm:"column:username;size:64;not null;index"`
	Attribute string `gorm:"column:attribute;size:64;not null"`
	Op        string `gorm:"column:op;size:2;not null"`
	Value     string `gorm:"column:value;size:253;not null"`
}

func (RadCheckModel) TableName() string {
	return "radcheck"
}

type RadUserGroupModel struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Username  string `gorm:"column:username;size:64;not null;index"`
	GroupName string `gorm:"column:groupname;size:64;not null"`
	Priority  int    `gorm:"column:priority;not null;default:1"`
}

func (RadUserGroupModel) TableName() string {
	return "radusergroup"
}

type RadReplyModel struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Username  string `gorm:"column:username;size:64;not null;index"`
	Attribute string `gorm:"column:attribute;size:64;not null"`
	Op        string `gorm:"column:op;size:2;not null"`
	Value     string `gorm:"column:value;size:253;not null"`
}

func (RadReplyModel) TableName() string {
	return "radreply"
}
