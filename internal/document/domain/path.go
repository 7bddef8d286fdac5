package domain

import (
	"regexp"
	"strings"
)

const (
	CategoryAsBuilt     = "as-built"
	CategoryPlanning    = "planning"
	CategoryHappyLetter = "happy_letter"

	DefaultFileName = "document.pdf"
)

// JobTypes are the job kinds documents can be filed under.
var JobTypes = []string{
	"drop_cable",
	"floating",
	"civils",
	"link_build",
	"access_build",
	"root_build",
	"maintenance",
	"relocations",
}

var categoryFileNames = map[string]string{
	CategoryAsBuilt:     "asbuilt.pdf",
	CategoryPlanning:    "planning.pdf",
	CategoryHappyLetter: "happyletter.pdf",
}

var (
	slashes    = regexp.MustCompile(`[\\/]+`)
	whitespace = regexp.MustCompile(`\s+`)
	separators = regexp.MustCompile(`[\\/\s_-]+`)
)

func ValidJobType(v string) bool {
	for _, t := range JobTypes {
		if t == v {
			return true
		}
	}
	return false
}

func ValidCategory(v string) bool {
	_, ok := categoryFileNames[v]
	return ok
}

// PathInput names the parts of a document's storage key.
type PathInput struct {
	ClientName       string
	ClientIdentifier string
	JobType          string
	CircuitNumber    string
	Category         string
	FileName         string
}

// BuildPath lays out {client}/{identifier?}/{job_type}/{circuit?}/{file}.
func BuildPath(in PathInput) string {
	client := SanitizeSegment(in.ClientName)
	segments := []string{client}

	identifier := SanitizeSegment(in.ClientIdentifier)
	if identifier != "" && normalize(identifier) != normalize(client) {
		segments = append(segments, identifier)
	}

	segments = append(segments, SanitizeSegment(in.JobType))
	if circuit := SanitizeSegment(in.CircuitNumber); circuit != "" {
		segments = append(segments, circuit)
	}
	return strings.Join(append(segments, FileNameFor(in.Category, in.FileName)), "/")
}

// FileNameFor picks the stored file name: fixed per category, else the
// caller's name.
func FileNameFor(category, fileName string) string {
	if name, ok := categoryFileNames[strings.TrimSpace(category)]; ok {
		return name
	}
	if name := SanitizeSegment(fileName); name != "" {
		return name
	}
	return DefaultFileName
}

// SanitizeSegment replaces path separators with "-" and collapses whitespace.
func SanitizeSegment(s string) string {
	s = slashes.ReplaceAllString(s, "-")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func normalize(s string) string {
	return strings.TrimSpace(separators.ReplaceAllString(strings.ToLower(s), ""))
}
