package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
)

const (
	// TestSecretHash is the bcrypt hash for the secret "password"
	// Used in test fixtures for predictable authentication testing
	// Generated with: bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	TestSecretHash = "$2a$10$j94IoTEXd628/ESukxvscuehNcj11LE80UtkFt3U5FqfNH1dloP.."
	TestSecret     = "password"
)

// CreateTestAPIClient создает тестового API клиента
func CreateTestAPIClient(clientID, name string, isActive bool) history.APIClient {
	now := time.Now()
	return history.APIClient{
		ID:         1,
		ClientID:   clientID,
		SecretHash: TestSecretHash,
		Name:       name,
		IsActive:   isActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestFillRecord создает тестовую запись истории заполнения
func CreateTestFillRecord(id int64, clientID, templateName string, totalFilled int32) history.FillRecord {
	return history.FillRecord{
		ID:           id,
		ClientID:     clientID,
		TemplateName: templateName,
		TemplateHash: strings.Repeat("ab", 32),
		TotalFilled:  totalFilled,
		CreatedAt:    time.Now(),
	}
}

const minimalDocHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const minimalDocFooter = `</w:body></w:document>`

// MinimalDocx собирает в памяти минимальный валидный docx-архив,
// по одному параграфу с одним раном на каждую переданную строку.
func MinimalDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var doc bytes.Buffer
	doc.WriteString(minimalDocHeader)
	for _, text := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		require.NoError(t, xml.EscapeText(&doc, []byte(text)))
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(minimalDocFooter)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`},
		{"_rels/.rels", `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", doc.String()},
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(part.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// DocxDocumentXML вытаскивает word/document.xml из docx-архива.
// Грубый помощник для проверок в хендлер-тестах.
func DocxDocumentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		return buf.String()
	}
	t.Fatal("архив не содержит word/document.xml")
	return ""
}

// CompareTestSecret compares a secret with a bcrypt hash
// Returns nil if secret matches the hash
func CompareTestSecret(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
