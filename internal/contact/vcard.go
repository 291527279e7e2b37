package contact

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/vsm-0/portfolio/internal/content"
)

// VCard builds a vCard 3.0 card from the profile's name, email and links.
func VCard(p *content.Profile) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	fmt.Fprintf(&b, "FN:%s\r\n", vcardEscape(p.Name))
	if p.Email != "" {
		fmt.Fprintf(&b, "EMAIL;TYPE=INTERNET:%s\r\n", vcardEscape(p.Email))
	}
	if len(p.Hero.Roles) > 0 {
		fmt.Fprintf(&b, "TITLE:%s\r\n", vcardEscape(p.Hero.Roles[0]))
	}
	for _, l := range p.Links {
		if l.External() {
			fmt.Fprintf(&b, "URL;TYPE=%s:%s\r\n", strings.ToUpper(l.Label), l.Href)
		}
	}
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

func vcardEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`).Replace(s)
}

// QRCode encodes data as a size×size PNG.
func QRCode(data string, size int) ([]byte, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
