package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/supportportal/internal/client/models"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// File is binary content attached to a form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// OpenFile reads the file at path into a File.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Name: filepath.Base(path), Data: data}, nil
}

// Part is one named form field: text, or a file when File is set or the
// part was added with AddFile.
type Part struct {
	Name   string
	Value  string
	File   *File
	isFile bool
}

// IsFile reports whether the part is a file field, even an empty one.
func (p Part) IsFile() bool {
	return p.isFile
}

// FormData is an ordered multipart payload.
type FormData struct {
	parts []Part
}

func NewFormData() *FormData {
	return &FormData{}
}

// Add appends a text field.
func (f *FormData) Add(name, value string) *FormData {
	f.parts = append(f.parts, Part{Name: name, Value: value})
	return f
}

// AddFile appends a file field. A nil file keeps the field in the form but
// nothing is sent for it on the wire.
func (f *FormData) AddFile(name string, file *File) *FormData {
	f.parts = append(f.parts, Part{Name: name, File: file, isFile: true})
	return f
}

// Parts returns the fields in insertion order.
func (f *FormData) Parts() []Part {
	return append([]Part(nil), f.parts...)
}

// Names returns the field names in insertion order.
func (f *FormData) Names() []string {
	names := make([]string, 0, len(f.parts))
	for _, p := range f.parts {
		names = append(names, p.Name)
	}
	return names
}

// Value returns the first text value of the named field.
func (f *FormData) Value(name string) (string, bool) {
	for _, p := range f.parts {
		if p.Name == name && !p.isFile {
			return p.Value, true
		}
	}
	return "", false
}

// Encode renders the form as multipart/form-data and returns the body with
// its content type.
func (f *FormData) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if !p.isFile {
			if err := w.WriteField(p.Name, p.Value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.Name, err)
			}
			continue
		}
		if p.File == nil {
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.Name), quoteEscaper.Replace(p.File.Name)))
		ct := p.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.Name, err)
		}
		if _, err := io.Copy(pw, bytes.NewReader(p.File.Data)); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", p.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// CreateUserFormData builds the add/update payload: six text fields, the
// profile image and the two flags, sent as the literals "true"/"false".
func CreateUserFormData(loggedInUsername string, u models.User, profileImage *File) *FormData {
	return NewFormData().
		Add("currentUsername", loggedInUsername).
		Add("firstName", u.FirstName).
		Add("lastName", u.LastName).
		Add("username", u.Username).
		Add("email", u.Email).
		Add("role", u.Role).
		AddFile("profileImage", profileImage).
		Add("isActive", strconv.FormatBool(u.Active)).
		Add("isNotLocked", strconv.FormatBool(u.NotLocked))
}

// ProfileImageFormData builds the payload of UpdateProfileImage.
func ProfileImageFormData(username string, image *File) *FormData {
	return NewFormData().
		Add("username", username).
		AddFile("profileImage", image)
}
