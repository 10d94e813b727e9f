package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"_rels/.rels":         `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":   sampleDocXML,
		"word/styles.xml":     `<?xml version="1.0"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"></w:styles>`,
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenBytes(t *testing.T) {
	pkg, err := OpenBytes(buildTestDocx(t))
	require.NoError(t, err)
	require.NotNil(t, pkg.Document)
	assert.Len(t, pkg.Document.Body, 2)
}

func TestOpenBytesErrors(t *testing.T) {
	t.Run("не zip", func(t *testing.T) {
		_, err := OpenBytes([]byte("plain text"))
		assert.Error(t, err)
	})

	t.Run("архив без document.xml", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		fw, err := zw.Create("word/styles.xml")
		require.NoError(t, err)
		_, err = fw.Write([]byte("<w:styles/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = OpenBytes(buf.Bytes())
		assert.ErrorContains(t, err, "word/document.xml")
	})
}

func TestPackageRoundTrip(t *testing.T) {
	pkg, err := OpenBytes(buildTestDocx(t))
	require.NoError(t, err)

	// Правка текста должна попасть в пересобранный архив, остальные части
	// переносятся байт в байт.
	pkg.Document.Body[0].Para.Runs()[1].SetText("测试公司")

	out, err := pkg.Bytes()
	require.NoError(t, err)

	reopened, err := OpenBytes(out)
	require.NoError(t, err)
	assert.Equal(t, "测试公司", reopened.Document.Body[0].Para.Runs()[1].Text())

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"}, names)

	for _, f := range zr.File {
		if f.Name == "word/styles.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			data := make([]byte, f.UncompressedSize64)
			_, err = rc.Read(data)
			rc.Close()
			if err != nil && err.Error() != "EOF" {
				require.NoError(t, err)
			}
			assert.Contains(t, string(data), "w:styles")
		}
	}
}
