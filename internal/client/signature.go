package client

import (
	"bytes"
	"html/template"
	"strings"
)

// Signature is the operator's reusable contact block
type Signature struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	// Custom is raw HTML that replaces the structured fields entirely
	Custom string `json:"custom"`
}

const signatureContainer = `<div style="margin-top: 30px; padding-top: 20px; border-top: 2px solid #e5e7eb;">`

var signatureTmpl = template.Must(template.New("signature").Parse(
	`<div style="margin-top: 30px; padding-top: 20px; border-top: 2px solid #e5e7eb; font-family: Arial, sans-serif;">` +
		`<div style="margin-bottom: 20px;">` +
		`{{ with .Name }}<div style="font-size: 18px; font-weight: 700; color: #667eea; margin-bottom: 5px;">{{ . }}</div>{{ end }}` +
		`{{ with .Title }}<div style="font-size: 14px; color: #6b7280; margin-bottom: 10px;">{{ . }}</div>{{ end }}` +
		`{{ with .Company }}<div style="font-size: 14px; color: #1f2937; margin-bottom: 10px;"><strong>{{ . }}</strong></div>{{ end }}` +
		`<div style="height: 2px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); margin: 15px 0; width: 100px;"></div>` +
		`<div style="font-size: 13px; color: #1f2937; line-height: 1.8;">` +
		`{{ with .Email }}<div>Email: <a href="mailto:{{ . }}" style="color: #667eea; text-decoration: none;">{{ . }}</a></div>{{ end }}` +
		`{{ with .Phone }}<div>Phone: {{ . }}</div>{{ end }}` +
		`{{ with .Website }}<div>Web: <a href="{{ . }}" style="color: #667eea; text-decoration: none;">{{ . }}</a></div>{{ end }}` +
		`</div></div></div>`,
))

// IsEmpty reports whether no field is set
func (s Signature) IsEmpty() bool {
	return s.trimmed() == (Signature{})
}

func (s Signature) trimmed() Signature {
	return Signature{
		Name:    strings.TrimSpace(s.Name),
		Title:   strings.TrimSpace(s.Title),
		Company: strings.TrimSpace(s.Company),
		Email:   strings.TrimSpace(s.Email),
		Phone:   strings.TrimSpace(s.Phone),
		Website: strings.TrimSpace(s.Website),
		Custom:  strings.TrimSpace(s.Custom),
	}
}

// HTML renders the signature. A non-blank Custom override is emitted as-is
// inside the container; otherwise only the set fields are rendered. An
// empty signature renders as "".
func (s Signature) HTML() string {
	t := s.trimmed()
	if t.Custom != "" {
		return signatureContainer + s.Custom + `</div>`
	}
	if t.IsEmpty() {
		return ""
	}

	var buf bytes.Buffer
	if err := signatureTmpl.Execute(&buf, t); err != nil {
		return ""
	}
	return buf.String()
}

// Append adds the rendered signature to an HTML body
func (s Signature) Append(body string) string {
	return body + s.HTML()
}

// LoadSignature returns the saved signature or an empty one
func LoadSignature(st Store) (Signature, error) {
	var sig Signature
	if _, err := st.Load(SignatureKey, &sig); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// SaveSignature overwrites the saved signature
func SaveSignature(st Store, sig Signature) error {
	return st.Save(SignatureKey, sig.trimmed())
}

// ClearSignature deletes the saved signature
func ClearSignature(st Store) error {
	return st.Delete(SignatureKey)
}
