package manifest

import (
	"errors"
	"testing"
)

func TestValidateFile_ValidManifest(t *testing.T) {
	result, err := ValidateFile(testPath("valid.xml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file string
		desc string
	}{
		{"partial.xml", "characters missing collections or mayaObjects, unexpected element"},
		{"optional.xml", "collection and mayaObject missing files"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
		})
	}
}

func TestValidate_IssueFields(t *testing.T) {
	result, err := ValidateFile(testPath("partial.xml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}

	paths := map[string]string{}
	for _, issue := range result.Issues {
		paths[issue.Path] = issue.Keyword
		if issue.Message == "" {
			t.Errorf("issue at %s has empty message", issue.Path)
		}
	}
	if paths["/characters/0/collections"] != "minItems" {
		t.Errorf("expected minItems issue at /characters/0/collections, got %v", paths)
	}
	if paths["/unexpected"] != "maxItems" {
		t.Errorf("expected maxItems issue at /unexpected, got %v", paths)
	}
}

func TestValidateFile_Malformed(t *testing.T) {
	_, err := ValidateFile(testPath("malformed.xml"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError for malformed XML, got %v", err)
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	_, err := ValidateFile(testPath("nonexistent.xml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
