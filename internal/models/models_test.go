package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDocCodePair_jsonRoundTrip(t *testing.T) {
	reviewed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pair := DocCodePair{
		ID:       "pair:abc123",
		FilePath: "src/app.ts",
		Language: "typescript",
		DocRange: Span{
			Start: Position{Line: 3, Col: 0},
			End:   Position{Line: 7, Col: 3},
		},
		DocContent: "/** Adds numbers. */",
		DocType:    DocStyleJSDoc,
		CodeRange: Span{
			Start: Position{Line: 8, Col: 0},
			End:   Position{Line: 12, Col: 1},
		},
		CodeContent: "function add(a: number, b: number): number { return a + b; }",
		CodeSignature: CodeSignature{
			Name: "add",
			Type: KindFunction,
			Parameters: []ParameterInfo{
				{Name: "a", Type: "number"},
				{Name: "b", Type: "number", IsOptional: true, DefaultValue: "0"},
			},
			ReturnType: "number",
			Modifiers:  []string{"export"},
			Hash:       "deadbeef",
		},
		DriftScore: 0.55,
		DriftReasons: []DriftReason{
			{Type: DriftParameterRemoved, Severity: SeverityHigh, Message: "documented parameter \"c\" no longer exists in the code"},
		},
		LastAnalyzed: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		IsReviewed:   true,
		ReviewedAt:   &reviewed,
	}

	data, err := json.Marshal(pair)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got DocCodePair
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(pair, got) {
		t.Errorf("round trip changed the pair:\n in: %+v\nout: %+v", pair, got)
	}
}

func TestDocCodePair_omitsNilReviewedAt(t *testing.T) {
	data, err := json.Marshal(DocCodePair{ID: "pair:x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, present := raw["reviewedAt"]; present {
		t.Error("nil reviewedAt should be omitted")
	}
}

func TestParsedDoc_Param(t *testing.T) {
	doc := ParsedDoc{Params: []DocParam{
		{Name: "limit", Type: "int"},
		{Name: "offset", Type: "int"},
	}}
	if p := doc.Param("offset"); p == nil || p.Name != "offset" {
		t.Errorf("Param(offset) = %+v", p)
	}
	if p := doc.Param("missing"); p != nil {
		t.Errorf("Param(missing) = %+v, want nil", p)
	}
}
