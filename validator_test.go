package draft4_test

import (
	"strings"
	"testing"

	draft4 "github.com/reoring/draft4"
	"github.com/reoring/draft4/jsontree"
)

func mustDecode(t *testing.T, src string) *jsontree.Value {
	t.Helper()
	v, err := jsontree.DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("DecodeJSON(%s): %v", src, err)
	}
	return v
}

// newRootValidator builds a Validator with src committed as the root schema.
func newRootValidator(t *testing.T, src string, opts ...draft4.Option) *draft4.Validator {
	t.Helper()
	v := draft4.New(opts...)
	undefined, err := v.InsertSchema(mustDecode(t, src), draft4.RootMarker)
	if err != nil {
		t.Fatalf("InsertSchema: %v", err)
	}
	if len(undefined) > 0 {
		t.Fatalf("InsertSchema left undefined refs: %v", undefined)
	}
	return v
}

// TestTypicalUsage exercises the decode-insert-validate sequence the package
// documentation shows.
func TestTypicalUsage(t *testing.T) {
	v := draft4.New()
	schema, err := jsontree.DecodeJSON([]byte(`{"type": "object", "required": ["name"]}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	undefined, err := v.InsertSchema(schema, draft4.RootMarker)
	if err != nil || len(undefined) > 0 {
		t.Fatalf("InsertSchema: %v %v", undefined, err)
	}
	if err := v.Validate(mustDecode(t, `{"name": "x"}`)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := v.Validate(mustDecode(t, `{}`)); err == nil {
		t.Fatalf("expected required-property failure")
	}
}

func TestValidate_WithoutRootSchemaFails(t *testing.T) {
	v := draft4.New()
	err := v.Validate(mustDecode(t, `{}`))
	f, ok := draft4.AsFailure(err)
	if !ok || f.Kind != draft4.KindSchemaWiring {
		t.Fatalf("want schema-wiring failure, got %v", err)
	}
}

func TestInsertSchema_TwiceWithSameIdFails(t *testing.T) {
	doc := `{"id": "http://example.com/root.json", "type": "object"}`
	v := draft4.New()
	if _, err := v.InsertSchema(mustDecode(t, doc), draft4.RootMarker); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := v.InsertSchema(mustDecode(t, doc), draft4.RootMarker)
	f, ok := draft4.AsFailure(err)
	if !ok || f.Kind != draft4.KindSchemaWiring {
		t.Fatalf("want schema-wiring failure, got %v", err)
	}
	if !strings.Contains(f.Message, "already present") {
		t.Fatalf("unexpected message: %q", f.Message)
	}
}

func TestInsertSchema_SameDocumentDanglingRefFails(t *testing.T) {
	v := draft4.New()
	_, err := v.InsertSchema(mustDecode(t, `{
		"id": "http://example.com/root.json",
		"items": {"$ref": "#/definitions/missing"}
	}`), draft4.RootMarker)
	f, ok := draft4.AsFailure(err)
	if !ok || f.Kind != draft4.KindSchemaWiring {
		t.Fatalf("want schema-wiring failure, got %v", err)
	}
}

func TestInsertSchema_LazyCrossDocumentLinking(t *testing.T) {
	root := `{
		"type": "object",
		"properties": {
			"n": {"$ref": "http://example.com/defs.json#/definitions/positive"}
		}
	}`
	defs := `{
		"id": "http://example.com/defs.json",
		"definitions": {
			"positive": {"type": "integer", "minimum": 1}
		}
	}`

	v := draft4.New()

	undefined, err := v.InsertSchema(mustDecode(t, root), draft4.RootMarker)
	if err != nil {
		t.Fatalf("insert root: %v", err)
	}
	if len(undefined) != 1 {
		t.Fatalf("undefined = %v, want exactly the external ref", undefined)
	}
	if got := undefined[0].String(); got != "http://example.com/defs.json#/definitions/positive" {
		t.Fatalf("undefined[0] = %s", got)
	}

	// the blocked insert must not have committed anything
	if err := v.Validate(mustDecode(t, `{}`)); err == nil {
		t.Fatalf("root schema should not be set after a blocked insert")
	}

	if undefined, err = v.InsertSchema(mustDecode(t, defs), "http://example.com/defs.json"); err != nil || len(undefined) > 0 {
		t.Fatalf("insert defs: %v %v", undefined, err)
	}
	if undefined, err = v.InsertSchema(mustDecode(t, root), draft4.RootMarker); err != nil || len(undefined) > 0 {
		t.Fatalf("re-insert root: %v %v", undefined, err)
	}

	if err := v.Validate(mustDecode(t, `{"n": 3}`)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := v.Validate(mustDecode(t, `{"n": 0}`)); err == nil {
		t.Fatalf("expected minimum violation through cross-document ref")
	}
}

func TestInsertSchema_CallerKeepsOwnershipOfDocument(t *testing.T) {
	doc := mustDecode(t, `{"type": "object", "items": {"$ref": "#/definitions/a"}, "definitions": {"a": {}}}`)
	before := doc.Clone()

	v := draft4.New()
	if _, err := v.InsertSchema(doc, draft4.RootMarker); err != nil {
		t.Fatalf("InsertSchema: %v", err)
	}
	// resolution rewrites $ref in the store's copy, not in the caller's tree
	if !jsontree.Equal(doc, before) {
		t.Fatalf("caller's document was mutated by insertion")
	}
}

func TestValidate_IsIdempotentWithoutDefaultInsertion(t *testing.T) {
	v := newRootValidator(t, `{
		"type": "object",
		"properties": {"n": {"type": "integer", "default": 0}}
	}`)
	instance := mustDecode(t, `{}`)
	before := instance.Clone()

	for i := 0; i < 2; i++ {
		if err := v.Validate(instance); err != nil {
			t.Fatalf("validate #%d: %v", i+1, err)
		}
	}
	if !jsontree.Equal(instance, before) {
		t.Fatalf("instance mutated without default insertion: %s", instance)
	}
}
