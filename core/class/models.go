package class

import (
	"net/url"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/file"
)

// Activity types
type ActivityType string

const (
	TypeActivity    ActivityType = "activity"
	TypeGame        ActivityType = "game"
	TypeVocabulary  ActivityType = "vocabulary"
	TypeExplanation ActivityType = "explanation"
	TypeReview      ActivityType = "review"
	TypeExam        ActivityType = "exam"
	TypeOral        ActivityType = "oral"
)

var AllActivityTypes = []ActivityType{
	TypeActivity, TypeGame, TypeVocabulary, TypeExplanation, TypeReview, TypeExam, TypeOral,
}

// Link is a named external URL attached to an activity or homework block.
// Inline data; not stored independently.
type Link struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

func (l *Link) Clean() {
	l.Name = core.CleanString(l.Name)
	l.URL = core.CleanString(l.URL)
}

// Hostname returns the link's host for display, or the raw URL when it
// cannot be parsed.
func (l Link) Hostname() string {
	u, err := url.Parse(l.URL)
	if err != nil || u.Host == "" {
		return l.URL
	}
	return u.Hostname()
}

// Activity is one ordered unit of a class's content. File order is
// user-controlled and preserved across save/load/share round trips.
type Activity struct {
	Type     ActivityType `json:"type"`
	Text     string       `json:"text"`
	TextHTML string       `json:"textHtml,omitempty"`
	Files    []file.Ref   `json:"files"`
	Links    []Link       `json:"links"`
}

// Class is one dated teaching session. The homework block is optional and
// kept flattened to match the persisted wire format.
type Class struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"` // YYYY-MM-DD
	CourseID      string     `json:"courseId"`
	Activities    []Activity `json:"activities"`
	Homework      string     `json:"homework,omitempty"`
	HomeworkHTML  string     `json:"homeworkHtml,omitempty"`
	HomeworkFiles []file.Ref `json:"homeworkFiles,omitempty"`
	HomeworkLinks []Link     `json:"homeworkLinks,omitempty"`
}

func (c Class) HasHomework() bool {
	return c.Homework != "" || len(c.HomeworkFiles) > 0 || len(c.HomeworkLinks) > 0
}

// FileIDs returns every file id referenced by the class's activities and
// homework block, in order, deduplicated.
func (c Class) FileIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(refs []file.Ref) {
		for _, ref := range refs {
			if !seen[ref.ID] {
				seen[ref.ID] = true
				ids = append(ids, ref.ID)
			}
		}
	}
	for _, act := range c.Activities {
		add(act.Files)
	}
	add(c.HomeworkFiles)
	return ids
}

func (c Class) ReferencesFile(id string) bool {
	for _, fid := range c.FileIDs() {
		if fid == id {
			return true
		}
	}
	return false
}

// NewActivity is one activity as submitted by the rendering layer.
type NewActivity struct {
	Type     ActivityType `json:"type" validate:"required,activitytype"`
	Text     string       `json:"text"`
	TextHTML string       `json:"textHtml"`
	Files    []file.Ref   `json:"files" validate:"dive"`
	Links    []Link       `json:"links" validate:"dive"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	CourseID      string        `json:"courseId"`
	Date          string        `json:"date" validate:"required,isodate"`
	Activities    []NewActivity `json:"activities" validate:"dive"`
	Homework      string        `json:"homework"`
	HomeworkHTML  string        `json:"homeworkHtml"`
	HomeworkFiles []file.Ref    `json:"homeworkFiles"`
	HomeworkLinks []Link        `json:"homeworkLinks" validate:"dive"`
}

func (nc *NewClass) Validate(svc *Service) error {
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.Homework = core.CleanString(nc.Homework)
	for i := range nc.Activities {
		nc.Activities[i].Text = core.CleanString(nc.Activities[i].Text)
		for j := range nc.Activities[i].Links {
			nc.Activities[i].Links[j].Clean()
		}
	}
	for i := range nc.HomeworkLinks {
		nc.HomeworkLinks[i].Clean()
	}

	if nc.CourseID == "" {
		return core.NewValidationError(ErrNoCourseSelected, core.FieldError{Field: "courseId", Error: ErrNoCourseSelected.Error()})
	}
	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	if len(nc.cleanActivities()) == 0 {
		return core.NewValidationError(ErrNoActivities, core.FieldError{Field: "activities", Error: ErrNoActivities.Error()})
	}
	return svc.checkCourse(nc.CourseID)
}

// cleanActivities drops activities whose text is empty after trimming;
// an empty activity is filtered out, not an error.
func (nc *NewClass) cleanActivities() []Activity {
	acts := make([]Activity, 0, len(nc.Activities))
	for _, na := range nc.Activities {
		if strings.TrimSpace(na.Text) == "" {
			continue
		}
		acts = append(acts, Activity{
			Type:     na.Type,
			Text:     na.Text,
			TextHTML: na.TextHTML,
			Files:    na.Files,
			Links:    na.Links,
		})
	}
	return acts
}

// UpdateClass carries the full replacement state of a class under edit; the
// original record stays untouched until the update is committed.
type UpdateClass struct {
	CourseID      string        `json:"courseId"`
	Date          string        `json:"date" validate:"required,isodate"`
	Activities    []NewActivity `json:"activities"`
	Homework      string        `json:"homework"`
	HomeworkHTML  string        `json:"homeworkHtml"`
	HomeworkFiles []file.Ref    `json:"homeworkFiles"`
	HomeworkLinks []Link        `json:"homeworkLinks" validate:"dive"`
}

func (uc *UpdateClass) Validate(svc *Service) error {
	nc := NewClass(*uc)
	if err := nc.Validate(svc); err != nil {
		return err
	}
	*uc = UpdateClass(nc)
	return nil
}

func (uc *UpdateClass) cleanActivities() []Activity {
	nc := NewClass(*uc)
	return nc.cleanActivities()
}

// Stats summarizes the registries for the storage-info panel.
type Stats struct {
	Classes      int   `json:"classes"`
	Files        int   `json:"files"`
	StorageBytes int64 `json:"storageBytes"`
}
