package field

import "testing"

type recordingForm struct {
	enabled bool
	changes []string
	values  map[string]any
}

func newRecordingForm() *recordingForm {
	return &recordingForm{enabled: true, values: map[string]any{}}
}

func (f *recordingForm) SetInternalFieldValue(name string, v any) {
	f.changes = append(f.changes, name)
	f.values[name] = v
}

func (f *recordingForm) Enabled() bool { return f.enabled }

func TestBasic_SetValueFromFormIsNotReported(t *testing.T) {
	form := newRecordingForm()
	b := NewBasic("age")
	b.Attach(form)

	b.SetValue(7, SourceForm)
	if got := b.Value(); got != 7 {
		t.Fatalf("expected value 7, got %v", got)
	}
	if len(form.changes) != 0 {
		t.Fatalf("form push must not be reported back, got %v", form.changes)
	}

	b.SetValue(8, SourceField)
	if len(form.changes) != 1 || form.values["age"] != 8 {
		t.Fatalf("field change must be reported, got %v / %v", form.changes, form.values)
	}
}

func TestBasic_EditMarksTouchedAndDirty(t *testing.T) {
	b := NewBasic("name", WithInitialValue("ada"))
	if b.IsDirty() || b.IsTouched() {
		t.Fatalf("fresh field should be pristine")
	}

	b.Edit("grace")
	if !b.IsTouched() {
		t.Fatalf("expected touched after edit")
	}
	if !b.IsDirty() {
		t.Fatalf("expected dirty after edit")
	}

	b.Edit("ada")
	if b.IsDirty() {
		t.Fatalf("value equal to initial should not be dirty")
	}
}

func TestBasic_DirtyTreatsEmptyCollectionsAsEqual(t *testing.T) {
	b := NewBasic("tags", WithInitialValue([]any{}))
	b.SetValue([]any(nil), SourceForm)
	if b.IsDirty() {
		t.Fatalf("nil and empty slices should compare equal")
	}
}

func TestBasic_ValidateAndInvalidate(t *testing.T) {
	b := NewBasic("email", WithValidators(Required("email is required")))

	if b.IsValid() {
		t.Fatalf("empty required field should be invalid")
	}
	if b.HasError() {
		t.Fatalf("IsValid must not set the error text")
	}
	if b.Validate() {
		t.Fatalf("validate should fail")
	}
	if got := b.ErrorText(); got != "email is required" {
		t.Fatalf("unexpected error text %q", got)
	}

	b.SetValue("a@example.com", SourceForm)
	if !b.Validate() || b.HasError() {
		t.Fatalf("expected valid field after value set")
	}

	b.Invalidate("taken")
	if b.IsValid() || b.ErrorText() != "taken" {
		t.Fatalf("expected custom error, got valid=%v text=%q", b.IsValid(), b.ErrorText())
	}
	if !b.Validate() {
		t.Fatalf("validate should clear the custom error")
	}
}

func TestBasic_DisabledSkipsValidation(t *testing.T) {
	form := newRecordingForm()
	b := NewBasic("code", WithValidators(Required("")))
	b.Attach(form)

	form.enabled = false
	if b.Enabled() {
		t.Fatalf("form-level disable should override field state")
	}
	if !b.Validate() {
		t.Fatalf("disabled fields validate successfully")
	}

	form.enabled = true
	b.SetDisabled(true)
	if b.Enabled() {
		t.Fatalf("field-level disable should hold")
	}
}

func TestBasic_ResetReportsInitialValue(t *testing.T) {
	form := newRecordingForm()
	b := NewBasic("age", WithInitialValue(5))
	b.Attach(form)
	b.Edit(9)
	b.Invalidate("nope")

	b.Reset()
	if b.Value() != 5 || b.IsTouched() || b.HasError() {
		t.Fatalf("reset did not restore state: value=%v touched=%v err=%q", b.Value(), b.IsTouched(), b.ErrorText())
	}
	if form.values["age"] != 5 {
		t.Fatalf("reset should report through the change path, got %v", form.values["age"])
	}
}

func TestBasic_FormInitialValueIsBaseline(t *testing.T) {
	form := newRecordingForm()
	b := NewBasic("city")
	b.Attach(form)
	b.SetInitialValue("Oslo")
	b.SetValue("Oslo", SourceForm)
	if b.IsDirty() {
		t.Fatalf("value matching the form initial value should not be dirty")
	}
	if _, ok := b.InitialValue(); ok {
		t.Fatalf("form initial value must not be reported as the field's own")
	}

	b.Edit("Bergen")
	b.Reset()
	if b.Value() != "Oslo" || form.values["city"] != "Oslo" {
		t.Fatalf("reset should restore the form initial value, got %v", b.Value())
	}

	own := NewBasic("zip", WithInitialValue("5003"))
	own.SetInitialValue("0150")
	if own.IsDirty() {
		t.Fatalf("field-level initial value should win over the form one")
	}
}

func TestBasic_HostCallbacks(t *testing.T) {
	var focused, scrolled bool
	var saved any
	b := NewBasic("x",
		WithInitialValue("v"),
		WithOnFocus(func() { focused = true }),
		WithOnEnsureVisible(func() { scrolled = true }),
		WithOnSaved(func(v any) { saved = v }),
	)

	b.Focus()
	b.EnsureVisible()
	b.Save()

	if !focused || !scrolled || saved != "v" {
		t.Fatalf("callbacks not invoked: focused=%v scrolled=%v saved=%v", focused, scrolled, saved)
	}
	if b.FocusCount() != 1 || b.ScrollCount() != 1 {
		t.Fatalf("unexpected counters focus=%d scroll=%d", b.FocusCount(), b.ScrollCount())
	}
}

func TestSource_String(t *testing.T) {
	if SourceField.String() != "field" || SourceForm.String() != "form" {
		t.Fatalf("unexpected source names")
	}
}
