package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

const documentPath = "word/document.xml"

// Package - открытый docx-контейнер. Все части архива, кроме
// word/document.xml, переносятся в выходной файл байт в байт и в исходном
// порядке.
type Package struct {
	files map[string][]byte
	order []string

	// Document - разобранное тело word/document.xml.
	Document *DocumentXML
}

// Open читает docx-контейнер и разбирает word/document.xml.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("открытие docx-архива: %w", err)
	}

	pkg := &Package{files: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("чтение части %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("чтение части %s: %w", f.Name, err)
		}
		pkg.files[f.Name] = data
		pkg.order = append(pkg.order, f.Name)
	}

	docXML, ok := pkg.files[documentPath]
	if !ok {
		return nil, fmt.Errorf("архив не содержит %s", documentPath)
	}

	doc, err := Parse(docXML)
	if err != nil {
		return nil, err
	}
	pkg.Document = doc

	return pkg, nil
}

// OpenBytes открывает контейнер из байтового среза.
func OpenBytes(data []byte) (*Package, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// Write собирает контейнер заново, подменяя word/document.xml
// сериализацией текущего состояния документа.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.order {
		data := p.files[name]
		if name == documentPath {
			data = Marshal(p.Document)
		}
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("запись части %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("запись части %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("закрытие docx-архива: %w", err)
	}
	return nil
}

// Bytes возвращает собранный контейнер как байтовый срез.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
