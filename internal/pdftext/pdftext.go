// Package pdftext reads the text layer of uploaded PDF documents.
//
// pdfcpu validates the file and detects encryption before ledongthuc/pdf
// walks the content streams. Files protected by an owner password only are
// decrypted first; a required user password is ErrEncrypted. Scanned documents
// without a text layer yield an empty Document, not an error.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrEmpty     = errors.New("pdf is empty")
	ErrEncrypted = errors.New("pdf is encrypted")
	ErrMalformed = errors.New("pdf is malformed")
)

func init() {
	// Keep pdfcpu from creating a config directory in the user's home.
	model.ConfigPath = "disable"
}

// Document is the text layer of one PDF.
type Document struct {
	Pages int
	Text  string
}

// Empty reports whether no text was found on any page.
func (d Document) Empty() bool { return strings.TrimSpace(d.Text) == "" }

// Read validates data and returns its text, one line per text row, pages
// separated by a blank line.
func Read(ctx context.Context, data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	pages, encrypted, err := validate(data)
	if err != nil {
		return Document{}, err
	}
	if encrypted {
		if data, err = decrypt(data); err != nil {
			return Document{}, err
		}
	}

	text, err := readText(ctx, data)
	if err != nil {
		return Document{}, err
	}
	return Document{Pages: pages, Text: text}, nil
}

// validate opens data with the empty user password. encrypted is set when
// that succeeded on an encrypted file.
func validate(data []byte) (pages int, encrypted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		if isPasswordErr(err) {
			return 0, false, fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return 0, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return 0, false, fmt.Errorf("%w: page count: %v", ErrMalformed, err)
	}
	return pctx.PageCount, pctx.Encrypt != nil, nil
}

// decrypt removes owner-password protection so the text layer can be read.
func decrypt(data []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: decrypt: %v", ErrEncrypted, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = ""
	conf.OwnerPW = ""

	var buf bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &buf, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncrypted, err)
	}
	return buf.Bytes(), nil
}

func isPasswordErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}

func readText(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: text layer: %v", ErrMalformed, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrMalformed, i, err)
		}
		if i > 1 && sb.Len() > 0 {
			sb.WriteString("\n")
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, w := range row.Content {
				if s := strings.TrimSpace(w.S); s != "" {
					words = append(words, s)
				}
			}
			if len(words) == 0 {
				continue
			}
			sb.WriteString(strings.Join(words, " "))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
