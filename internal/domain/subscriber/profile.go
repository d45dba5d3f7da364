package subscriber

import "fmt"

// Profile describes a service plan: how long one payment is valid for and
// which RADIUS group (router-side rate limit) an active subscriber belongs to.
type Profile struct {
	id            uint
	name          string
	validityValue int
	validityUnit  ValidityUnit
	radiusGroup   string
	price         int64
}

func NewProfile(name string, validityValue int, validityUnit ValidityUnit, radiusGroup string, price int64) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if validityValue <= 0 {
		return nil, fmt.Errorf("validity value must be positive")
	}
	if !validityUnit.IsValid() {
		return nil, fmt.Errorf("invalid validity unit: %s", validityUnit)
	}
	if radiusGroup == "" {
		return nil, fmt.Errorf("radius group is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	return &Profile{
		name:          name,
		validityValue: validityValue,
		validityUnit:  validityUnit,
		radiusGroup:   radiusGroup,
		price:         price,
	}, nil
}

// ReconstructProfile rebuilds a profile from persistence.
func ReconstructProfile(id uint, name string, validityValue int, validityUnit ValidityUnit, radiusGroup string, price int64) (*Profile, error) {
	if id == 0 {
		return nil, fmt.Errorf("profile ID cannot be zero")
	}
	if !validityUnit.IsValid() {
		return nil, fmt.Errorf("invalid validity unit: %s", validityUnit)
	}

	return &Profile{
		id:            id,
		name:          name,
		validityValue: validityValue,
		validityUnit:  validityUnit,
		radiusGroup:   radiusGroup,
		price:         price,
	}, nil
}

// SetID writes back the auto-generated ID after insert.
func (p *Profile) SetID(id uint) { p.id = id }

func (p *Profile) ID() uint                   { return p.id }
func (p *Profile) Name() string               { return p.name }
func (p *Profile) ValidityValue() int         { return p.validityValue }
func (p *Profile) ValidityUnit() ValidityUnit { return p.validityUnit }
func (p *Profile) RadiusGroup() string        { return p.radiusGroup }
func (p *Profile) Price() int64               { return p.price }
