package client

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func TestMultipartBody_Encode(t *testing.T) {
	body := &MultipartBody{
		Fields: map[string]string{"model": "v1"},
		Files: []FileField{
			{FieldName: "file", FileName: "data.json", ContentType: "application/json", Data: []byte(`{"a":1}`)},
			{FieldName: "raw", FileName: "blob.bin", Reader: strings.NewReader("binary")},
		},
	}

	data, contentType, err := body.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mediaType, mtParams, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart/form-data, got %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(data), mtParams["boundary"])
	parts := map[string]string{}
	types := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		content, _ := io.ReadAll(part)
		parts[part.FormName()] = string(content)
		types[part.FormName()] = part.Header.Get("Content-Type")
	}

	if parts["model"] != "v1" {
		t.Errorf("expected form field, got %q", parts["model"])
	}
	if parts["file"] != `{"a":1}` {
		t.Errorf("expected file data, got %q", parts["file"])
	}
	if types["file"] != "application/json" {
		t.Errorf("expected explicit content type, got %q", types["file"])
	}
	if parts["raw"] != "binary" {
		t.Errorf("expected reader-sourced data, got %q", parts["raw"])
	}
	if types["raw"] != "application/octet-stream" {
		t.Errorf("expected default content type, got %q", types["raw"])
	}
}

func TestJSONBody(t *testing.T) {
	data, err := JSONBody(map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"n":1}` {
		t.Errorf("unexpected body %s", data)
	}

	if _, err := JSONBody(func() {}); err == nil {
		t.Error("expected error for unencodable value")
	}
}
