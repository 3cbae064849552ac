package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/characters/0/collections")
	Message string // Human-readable error message
	Keyword string // Schema keyword location that failed
}

// documentView is the JSON shape the schema validates. Absent XML nodes stay
// absent (nil) so that "required" can report them.
type documentView struct {
	Root       string          `json:"root"`
	Characters []characterView `json:"characters"`
	Unexpected []string        `json:"unexpected,omitempty"`
}

type characterView struct {
	Name        *string          `json:"name,omitempty"`
	AltName     *string          `json:"altName,omitempty"`
	Collections []collectionView `json:"collections"`
	MayaObjects []meshView       `json:"mayaObjects"`
}

type collectionView struct {
	Version    *string  `json:"version,omitempty"`
	MayaFile   *string  `json:"mayaFile,omitempty"`
	XGenFile   *string  `json:"xgenFile,omitempty"`
	HairPlates []string `json:"hairPlates"`
}

type meshView struct {
	Version       *string `json:"version,omitempty"`
	MayaFile      *string `json:"mayaFile,omitempty"`
	CharacterMesh *string `json:"characterMesh,omitempty"`
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw manifest XML against the manifest JSON schema. Parse is
// lenient and drops bad characters; Validate reports every structural problem
// so manifests can be fixed at the source.
// The error return is for XML decoding or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	doc, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(viewOf(doc))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateFile reads a file and validates it against the manifest schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

func viewOf(doc *rawDocument) documentView {
	view := documentView{Root: doc.XMLName.Local, Characters: []characterView{}}
	for _, raw := range doc.Children {
		if raw.XMLName.Local != elemCharacter {
			view.Unexpected = append(view.Unexpected, raw.XMLName.Local)
			continue
		}
		cv := characterView{
			Name:        raw.Name,
			AltName:     raw.AltName,
			Collections: []collectionView{},
			MayaObjects: []meshView{},
		}
		for _, rc := range raw.Collections {
			plates := rc.HairPlates
			if plates == nil {
				plates = []string{}
			}
			cv.Collections = append(cv.Collections, collectionView{
				Version:    rc.Version,
				MayaFile:   rc.MayaFile,
				XGenFile:   rc.XGenFile,
				HairPlates: plates,
			})
		}
		for _, rm := range raw.MayaObjects {
			mesh := rm.CharacterMesh
			if mesh == nil {
				mesh = rm.LegacyMesh
			}
			cv.MayaObjects = append(cv.MayaObjects, meshView{
				Version:       rm.Version,
				MayaFile:      rm.MayaFile,
				CharacterMesh: mesh,
			})
		}
		view.Characters = append(view.Characters, cv)
	}
	return view
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
