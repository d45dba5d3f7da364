package notification

import (
	"strings"
	"time"
)

// TemplateTypePaymentSuccess identifies the message sent after a confirmed
// payment.
const TemplateTypePaymentSuccess = "payment_success"

// DefaultPaymentSuccessTemplate is used when no template row is configured.
const DefaultPaymentSuccessTemplate = "Halo [[customer_name]],\n\n" +
	"Pembayaran tagihan [[invoice_number]] sebesar Rp [[amount]] telah kami terima. " +
	"Layanan [[profile_name]] Anda aktif sampai [[due_date]].\n\n" +
	"Terima kasih,\n[[company_name]] [[company_phone]]"

// Template is a stored message body with [[token]] placeholders.
type Template struct {
	id           uint
	templateType string
	content      string
	updatedAt    time.Time
}

func NewTemplate(templateType, content string) *Template {
	return &Template{
		templateType: templateType,
		content:      content,
		updatedAt:    time.Now().UTC(),
	}
}

// ReconstructTemplate rebuilds a template from persistence.
func ReconstructTemplate(id uint, templateType, content string, updatedAt time.Time) *Template {
	return &Template{
		id:           id,
		templateType: templateType,
		content:      content,
		updatedAt:    updatedAt,
	}
}

func (t *Template) ID() uint             { return t.id }
func (t *Template) Type() string         { return t.templateType }
func (t *Template) Content() string      { return t.content }
func (t *Template) UpdatedAt() time.Time { return t.updatedAt }

// Render substitutes the template's placeholders with the supplied values.
func (t *Template) Render(values map[string]string) string {
	return RenderTemplate(t.content, values)
}

// RenderTemplate substitutes every [[token]] placeholder in content with its
// value. Placeholders without a supplied value render as an empty string.
// Pure string substitution, no I/O.
func RenderTemplate(content string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(content))

	for {
		start := strings.Index(content, "[[")
		if start < 0 {
			b.WriteString(content)
			break
		}
		end := strings.Index(content[start:], "]]")
		if end < 0 {
			b.WriteString(content)
			break
		}
		end += start

		b.WriteString(content[:start])
		token := content[start+2 : end]
		b.WriteString(values[token])
		content = content[end+2:]
	}

	return b.String()
}
