package extract

import (
	"testing"

	"github.com/driftlens/driftlens/internal/models"
)

func TestJavaExtractor_method(t *testing.T) {
	src := `/**
 * Looks up a user's display name.
 * @param id the user id
 * @return the display name
 */
public String getName(int id) {
    return names.get(id);
}
`
	pairs := NewJavaExtractor().ExtractPairs("Users.java", src)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	p := pairs[0]
	if p.Language != "java" || p.DocType != models.DocStyleJavadoc {
		t.Errorf("language/docType: %s/%s", p.Language, p.DocType)
	}
	sig := p.CodeSignature
	if sig.Name != "getName" || sig.Type != models.KindMethod || sig.ReturnType != "String" {
		t.Errorf("signature %+v", sig)
	}
	if !contains(sig.Modifiers, "public") {
		t.Errorf("modifiers %v", sig.Modifiers)
	}
	if len(sig.Parameters) != 1 || sig.Parameters[0].Name != "id" || sig.Parameters[0].Type != "int" {
		t.Errorf("parameters %+v", sig.Parameters)
	}
}

func TestJavaExtractor_voidReturnOmitted(t *testing.T) {
	src := `/** Clears all entries. */
public void clear() {
}
`
	pairs := NewJavaExtractor().ExtractPairs("Cache.java", src)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	if rt := pairs[0].CodeSignature.ReturnType; rt != "" {
		t.Errorf("void should leave return type empty, got %q", rt)
	}
}

func TestJavaExtractor_constructor(t *testing.T) {
	src := `/**
 * Creates a cache of the given capacity.
 * @param capacity maximum entries
 */
public Cache(int capacity) {
    this.capacity = capacity;
}
`
	pairs := NewJavaExtractor().ExtractPairs("Cache.java", src)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	sig := pairs[0].CodeSignature
	if sig.Name != "Cache" || sig.Type != models.KindMethod || sig.ReturnType != "" {
		t.Errorf("signature %+v", sig)
	}
}

func TestJavaExtractor_genericsAndVarargs(t *testing.T) {
	src := `/** Counts occurrences. */
public Map<String, Integer> count(List<String> items, String... extras) {
    return null;
}
`
	pairs := NewJavaExtractor().ExtractPairs("Counter.java", src)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	sig := pairs[0].CodeSignature
	if sig.ReturnType != "Map<String, Integer>" {
		t.Errorf("return type %q", sig.ReturnType)
	}
	if len(sig.Parameters) != 2 {
		t.Fatalf("parameters %+v", sig.Parameters)
	}
	if sig.Parameters[0].Name != "items" || sig.Parameters[0].Type != "List<String>" {
		t.Errorf("param 0: %+v", sig.Parameters[0])
	}
	if !sig.Parameters[1].IsRest || sig.Parameters[1].Type != "String" {
		t.Errorf("varargs: %+v", sig.Parameters[1])
	}
}

func TestJavaExtractor_annotationsSkipped(t *testing.T) {
	src := `/** Handles a request. */
@Override
@Transactional
public void handle(@NonNull final Request req) {
}
`
	pairs := NewJavaExtractor().ExtractPairs("Handler.java", src)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs", len(pairs))
	}
	sig := pairs[0].CodeSignature
	if sig.Name != "handle" {
		t.Errorf("signature %+v", sig)
	}
	// Parameter annotations and final are dropped.
	if len(sig.Parameters) != 1 || sig.Parameters[0].Name != "req" || sig.Parameters[0].Type != "Request" {
		t.Errorf("parameters %+v", sig.Parameters)
	}
}

func TestJavaExtractor_classInterfaceField(t *testing.T) {
	src := `/** A bounded cache. */
public final class Cache {
}

/** Eviction strategy contract. */
interface Eviction {
}

/** Maximum retries before failing. */
private static final int MAX_RETRIES = 3;
`
	pairs := NewJavaExtractor().ExtractPairs("Cache.java", src)
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
	if pairs[0].CodeSignature.Type != models.KindClass || pairs[0].CodeSignature.Name != "Cache" {
		t.Errorf("pair 0: %+v", pairs[0].CodeSignature)
	}
	if pairs[1].CodeSignature.Type != models.KindInterface || pairs[1].CodeSignature.Name != "Eviction" {
		t.Errorf("pair 1: %+v", pairs[1].CodeSignature)
	}
	f := pairs[2].CodeSignature
	if f.Type != models.KindVariable || f.Name != "MAX_RETRIES" || f.ReturnType != "int" {
		t.Errorf("pair 2: %+v", f)
	}
}

func TestJavaExtractor_controlFlowNotDeclarations(t *testing.T) {
	src := `/** Seemingly documented. */
if (ready) {
}
`
	if pairs := NewJavaExtractor().ExtractPairs("Flow.java", src); len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0", len(pairs))
	}
}
