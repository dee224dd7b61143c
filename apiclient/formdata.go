package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// FormFile is one file part of a multipart upload.
type FormFile struct {
	Field    string
	FileName string
	Content  io.Reader
}

// FormData is a multipart/form-data body.
type FormData struct {
	Fields map[string]string
	Files  []FormFile
}

func NewFormData() *FormData {
	return &FormData{Fields: make(map[string]string)}
}

func (f *FormData) AddField(name, value string) *FormData {
	f.Fields[name] = value
	return f
}

func (f *FormData) AddFile(field, fileName string, content io.Reader) *FormData {
	f.Files = append(f.Files, FormFile{Field: field, FileName: fileName, Content: content})
	return f
}

func (f *FormData) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writer.WriteField(name, f.Fields[name]); err != nil {
			return nil, "", fmt.Errorf("field %s: %w", name, err)
		}
	}

	for _, file := range f.Files {
		part, err := writer.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("file %s: %w", file.FileName, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("file %s: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
