package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquireText_PlainText(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte("Invoice Number: INV-001\nTotal: 500"),
		ContentType:  "text/plain; charset=utf-8",
		OriginalName: "invoice.txt",
	}

	assert.Equal(t, "Invoice Number: INV-001\nTotal: 500", AcquireText(file))
}

func TestAcquireText_OctetStreamWithTextExtension(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte("supplier,amount\nAcme,100"),
		ContentType:  "application/octet-stream",
		OriginalName: "invoices.csv",
	}

	assert.Equal(t, "supplier,amount\nAcme,100", AcquireText(file))
}

func TestAcquireText_EmptyContentTypeWithJSONExtension(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte(`{"supplier":"Acme"}`),
		ContentType:  "",
		OriginalName: "invoice.JSON",
	}

	assert.Equal(t, `{"supplier":"Acme"}`, AcquireText(file))
}

func TestAcquireText_InvalidUTF8UsesPlaceholder(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte{0xff, 0xfe, 0xfd},
		ContentType:  "text/plain",
		OriginalName: "broken.txt",
	}

	assert.Equal(t, "Uploaded invoice file: broken.txt. Extract key invoice details.", AcquireText(file))
}

func TestAcquireText_MalformedPDFUsesPlaceholder(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte("not a real pdf"),
		ContentType:  "application/pdf",
		OriginalName: "scan.pdf",
	}

	assert.Equal(t, "Uploaded invoice file: scan.pdf. Extract key invoice details.", AcquireText(file))
}

func TestAcquireText_UnknownBinaryUsesPlaceholder(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte{0x89, 0x50, 0x4e, 0x47},
		ContentType:  "image/png",
		OriginalName: "photo.png",
	}

	assert.Equal(t, "Uploaded invoice file: photo.png. Extract key invoice details.", AcquireText(file))
}

func TestAcquireText_OctetStreamWithoutTextExtensionUsesPlaceholder(t *testing.T) {
	file := UploadedFile{
		Bytes:        []byte("readable but untrusted"),
		ContentType:  "application/octet-stream",
		OriginalName: "invoice.bin",
	}

	assert.Equal(t, "Uploaded invoice file: invoice.bin. Extract key invoice details.", AcquireText(file))
}

func TestAcquireText_ZeroLengthText(t *testing.T) {
	file := UploadedFile{
		Bytes:        nil,
		ContentType:  "text/plain",
		OriginalName: "empty.txt",
	}

	// Empty bytes are valid UTF-8; the result is the empty string, not the
	// placeholder.
	assert.Equal(t, "", AcquireText(file))
}
