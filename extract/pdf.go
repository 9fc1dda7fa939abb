// Copyright 2026 Gray Iron Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfSource implements pageSource on top of a validated pdfcpu context.
type pdfSource struct {
	file *os.File
	ctx  *model.Context
}

// openPDF opens, validates, and optimizes a PDF document.
func openPDF(path string) (pageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdf parse: %w", err)
	}

	return &pdfSource{file: f, ctx: ctx}, nil
}

func (s *pdfSource) PageCount() int {
	return s.ctx.PageCount
}

// PageText extracts selectable text from a page's content stream.
func (s *pdfSource) PageText(pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(s.ctx, pageNr)
	if err != nil {
		return "", fmt.Errorf("page %d content: %w", pageNr, err)
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("page %d content read: %w", pageNr, err)
	}
	if len(data) == 0 {
		return "", nil
	}

	return textFromContentStream(data), nil
}

// PageImages extracts the raster images embedded in a page.
func (s *pdfSource) PageImages(pageNr int) ([]pageImage, error) {
	extracted, err := pdfcpu.ExtractPageImages(s.ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("page %d images: %w", pageNr, err)
	}

	images := make([]pageImage, 0, len(extracted))
	for _, img := range extracted {
		data, err := io.ReadAll(img)
		if err != nil || len(data) == 0 {
			continue
		}
		images = append(images, pageImage{
			Name:     img.Name,
			FileType: img.FileType,
			Data:     data,
		})
	}

	return images, nil
}

func (s *pdfSource) Close() error {
	return s.file.Close()
}

// literalStringRe matches PDF literal strings: (text).
var literalStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream walks a page content stream line by line and
// collects the arguments of the text-showing operators. Positioning
// operators contribute whitespace so words on separate lines do not
// run together.
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range literalStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeLiteralString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range literalStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeLiteralString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeText(sb.String())
}

// decodeLiteralString resolves the escape sequences PDF allows inside
// literal strings, including octal character codes.
func decodeLiteralString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				break
			}
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// normalizeText collapses whitespace runs and drops non-printable runes.
func normalizeText(text string) string {
	var sb strings.Builder
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = sb.Len() > 0
		case unicode.IsPrint(r):
			if pendingSpace {
				sb.WriteByte(' ')
				pendingSpace = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
