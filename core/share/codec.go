// Package share serializes single classes (with their file blobs inlined)
// to portable forms: a URL-embeddable base64 payload, a downloadable JSON
// document, a plain-text summary, and an emailed share link. It also decodes
// the URL form back into a class-plus-blobs import.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
)

// maxParamBytes caps the decoded size of an untrusted share parameter; a
// class can carry at most a handful of 10 MiB blobs, so anything beyond this
// is garbage or abuse.
const maxParamBytes = 64 << 20

// Portable is the self-contained export form of a class: the record itself
// plus every referenced blob inlined under Files. The only path where blob
// data is duplicated out of the store.
type Portable struct {
	class.Class
	ShareDate time.Time            `json:"shareDate"`
	Files     map[string]file.File `json:"files"`
}

// DecodeError reports a malformed or truncated share/import payload. The
// import aborts; existing state is untouched.
type DecodeError struct {
	msg   string
	cause error
}

func NewDecodeError(msg string, cause error) error {
	return &DecodeError{msg: msg, cause: cause}
}

func (e *DecodeError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *DecodeError) Unwrap() error { return e.cause }

func IsDecodeError(err error) bool {
	_, ok := errors.Cause(err).(*DecodeError)
	return ok
}

// Restorer swaps the whole store for a backup's contents in one step, so a
// reader never sees a half-restored mix of old and new documents.
type Restorer interface {
	RestoreAll(classes []class.Class, courses []course.Course, files []file.File) error
}

type Service struct {
	classes  *class.Service
	courses  *course.Service
	files    *file.Service
	restorer Restorer
	mail     core.EmailService
	conf     *core.Config
}

func NewService(conf *core.Config, classes *class.Service, courses *course.Service, files *file.Service, restorer Restorer, mailSvc core.EmailService) *Service {
	return &Service{
		classes:  classes,
		courses:  courses,
		files:    files,
		restorer: restorer,
		mail:     mailSvc,
		conf:     conf,
	}
}

// Export deep-copies the class and inlines the full record of every file it
// references. Refs whose blob is gone are skipped, matching the registry's
// read-path posture on dangling ids.
func (svc *Service) Export(classID string) (Portable, error) {
	c, err := svc.classes.Get(classID)
	if err != nil {
		return Portable{}, err
	}
	cp, err := copyClass(c)
	if err != nil {
		return Portable{}, err
	}
	p := Portable{
		Class:     cp,
		ShareDate: time.Now().UTC(),
		Files:     make(map[string]file.File),
	}
	for _, fid := range c.FileIDs() {
		f, err := svc.files.Get(fid)
		if err != nil {
			if errors.Cause(err) == file.ErrNotFound {
				continue
			}
			return Portable{}, err
		}
		p.Files[fid] = f
	}
	return p, nil
}

// copyClass deep-copies via a JSON round trip so the portable form shares no
// slices with the registry's record.
func copyClass(c class.Class) (class.Class, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "copying class")
	}
	var cp class.Class
	if err := json.Unmarshal(raw, &cp); err != nil {
		return class.Class{}, errors.Wrap(err, "copying class")
	}
	return cp, nil
}

// EncodeParam renders a portable class as a URL query parameter value:
// base64(JSON).
func (svc *Service) EncodeParam(p Portable) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "encoding share parameter")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeParam is the inverse of EncodeParam. The input is untrusted: a
// truncated value (URL length limits), bad base64, bad JSON, an oversized
// payload or missing required fields all come back as a DecodeError.
func (svc *Service) DecodeParam(param string) (Portable, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return Portable{}, NewDecodeError("empty share parameter", nil)
	}
	if len(param) > maxParamBytes {
		return Portable{}, NewDecodeError("share parameter too large", nil)
	}
	raw, err := base64.StdEncoding.DecodeString(param)
	if err != nil {
		return Portable{}, NewDecodeError("invalid share parameter", err)
	}
	var p Portable
	if err := json.Unmarshal(raw, &p); err != nil {
		return Portable{}, NewDecodeError("invalid share payload", err)
	}
	if p.Date == "" || len(p.Activities) == 0 {
		return Portable{}, NewDecodeError("share payload is missing required fields", nil)
	}
	return p, nil
}

// Import merges the portable files into the blob store (last writer wins on
// id collisions), strips the transport fields and inserts the class under a
// fresh id. Nothing is written if the payload fails validation.
func (svc *Service) Import(p Portable) (class.Class, error) {
	if p.Date == "" || len(p.Activities) == 0 {
		return class.Class{}, NewDecodeError("share payload is missing required fields", nil)
	}
	for _, f := range p.Files {
		if err := svc.files.Check(f); err != nil {
			return class.Class{}, NewDecodeError("share payload carries an invalid file", err)
		}
	}
	for id, f := range p.Files {
		f.ID = id
		if _, err := svc.files.Restore(f); err != nil {
			return class.Class{}, err
		}
	}
	c := p.Class
	c.ID = ""
	imported, err := svc.classes.Import(c)
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return class.Class{}, NewDecodeError("share payload has no usable activities", err)
		}
		return class.Class{}, err
	}
	return imported, nil
}

// ShareURL builds the one-shot import link consumed at page load.
func (svc *Service) ShareURL(classID string) (string, error) {
	p, err := svc.Export(classID)
	if err != nil {
		return "", err
	}
	param, err := svc.EncodeParam(p)
	if err != nil {
		return "", err
	}
	return svc.conf.FrontendBaseURL + "?share=" + param, nil
}

// PlainText renders a human-readable class summary for clipboard sharing.
// Pure formatting; no side effects.
func (svc *Service) PlainText(classID string) (string, error) {
	c, err := svc.classes.Get(classID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CLASS PLAN - %s\n", c.Date)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("ACTIVITIES:\n")
	for i, act := range c.Activities {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(string(act.Type)), act.Text)
		if len(act.Files) > 0 {
			fmt.Fprintf(&b, "   Files: %s\n", joinFileNames(act.Files))
		}
		if len(act.Links) > 0 {
			fmt.Fprintf(&b, "   Links: %s\n", joinLinks(act.Links))
		}
		b.WriteString("\n")
	}

	if c.HasHomework() {
		fmt.Fprintf(&b, "HOMEWORK:\n%s\n", c.Homework)
		if len(c.HomeworkFiles) > 0 {
			fmt.Fprintf(&b, "Homework files: %s\n", joinFileNames(c.HomeworkFiles))
		}
		if len(c.HomeworkLinks) > 0 {
			fmt.Fprintf(&b, "Homework links: %s\n", joinLinks(c.HomeworkLinks))
		}
	}
	return b.String(), nil
}

func joinFileNames(refs []file.Ref) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return strings.Join(names, ", ")
}

func joinLinks(links []class.Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("%s (%s)", l.Name, l.URL))
	}
	return strings.Join(parts, ", ")
}

// EmailShare mails the share link and plain-text summary, attaching the
// portable JSON document.
func (svc *Service) EmailShare(classID string, to []mail.Address) error {
	if len(to) == 0 {
		return core.NewValidationError(errors.New("no recipients"), core.FieldError{Field: "to", Error: "this field is required"})
	}
	p, err := svc.Export(classID)
	if err != nil {
		return err
	}
	param, err := svc.EncodeParam(p)
	if err != nil {
		return err
	}
	text, err := svc.PlainText(classID)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "rendering share attachment")
	}

	url := svc.conf.FrontendBaseURL + "?share=" + param
	msg := &core.EmailMessage{
		To:      to,
		Subject: "Class plan - " + p.Date,
		BodyStr: "A class plan has been shared with you. Open it here:\n\n" + url + "\n\n" + text,
		Attachments: []core.Attachment{{
			Content:     bytes.NewBuffer(raw),
			ContentType: "application/json",
			Filename:    fmt.Sprintf("class-%s.json", p.Date),
		}},
	}
	svc.mail.SendMessages(msg)
	return nil
}
