package preset

import (
	"context"
	"strings"
	"testing"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

func TestScope(t *testing.T) {
	sys := SystemScope()
	if !sys.IsSystem() {
		t.Error("SystemScope().IsSystem() = false")
	}
	if owner, ok := sys.WorkspaceID(); ok || owner != "" {
		t.Errorf("system scope leaked workspace %q", owner)
	}

	ws := WorkspaceScope("ws_a3f8d2k9p1m4n7q2")
	if ws.IsSystem() {
		t.Error("WorkspaceScope().IsSystem() = true")
	}
	owner, ok := ws.WorkspaceID()
	if !ok || owner != "ws_a3f8d2k9p1m4n7q2" {
		t.Errorf("WorkspaceID() = %q, %v", owner, ok)
	}
}

func TestNewPreset(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		scope    Scope
		preset   [5]string // name, description, category, template, model
		wantErr  bool
		wantSys  bool
		isPublic bool
	}{
		{
			name:     "workspace preset",
			scope:    WorkspaceScope("ws_a3f8d2k9p1m4n7q2"),
			preset:   [5]string{"Summarize", "Short summaries", "writing", "Summarize: {{.text}}", "gpt-4o"},
			isPublic: false,
		},
		{
			name:     "system preset",
			scope:    SystemScope(),
			preset:   [5]string{"Translate", "Translations", "writing", "Translate: {{.text}}", "gpt-4o-mini"},
			wantSys:  true,
			isPublic: true,
		},
		{
			name:    "empty name",
			scope:   SystemScope(),
			preset:  [5]string{"", "desc", "cat", "tmpl", "model"},
			wantErr: true,
		},
		{
			name:    "blank template",
			scope:   SystemScope(),
			preset:  [5]string{"Name", "desc", "cat", "   ", "model"},
			wantErr: true,
		},
		{
			name:    "empty model",
			scope:   SystemScope(),
			preset:  [5]string{"Name", "desc", "cat", "tmpl", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPreset(ctx, tt.scope, tt.preset[0], tt.preset[1], tt.preset[2], tt.preset[3], tt.preset[4], nil, tt.isPublic)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
					t.Errorf("expected VALIDATION error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPreset() error = %v", err)
			}
			if !strings.HasPrefix(p.ID, "pre_") {
				t.Errorf("ID = %q, want pre_ prefix", p.ID)
			}
			if p.IsSystemPreset() != tt.wantSys {
				t.Errorf("IsSystemPreset() = %v, want %v", p.IsSystemPreset(), tt.wantSys)
			}
			if p.UsageCount != 0 {
				t.Errorf("UsageCount = %d, want 0", p.UsageCount)
			}
			if p.Parameters == nil {
				t.Error("nil parameters must be normalized to an empty map")
			}
		})
	}
}

func TestPreset_IsAccessibleBy(t *testing.T) {
	workspacePreset := &Preset{Scope: WorkspaceScope("ws_a3f8d2k9p1m4n7q2")}
	publicSystem := &Preset{Scope: SystemScope(), IsPublic: true}
	privateSystem := &Preset{Scope: SystemScope(), IsPublic: false}

	if !workspacePreset.IsAccessibleBy("ws_a3f8d2k9p1m4n7q2") {
		t.Error("owner workspace must have access")
	}
	if workspacePreset.IsAccessibleBy("ws_x0y1z2w3v4u5t6s7") {
		t.Error("foreign workspace must not have access")
	}
	if !publicSystem.IsAccessibleBy("ws_x0y1z2w3v4u5t6s7") {
		t.Error("public system preset must be readable by any workspace")
	}
	if privateSystem.IsAccessibleBy("ws_x0y1z2w3v4u5t6s7") {
		t.Error("non-public system preset must not be readable")
	}
}

func TestPreset_ApplyUpdate(t *testing.T) {
	ctx := context.Background()

	base := func() *Preset {
		p, err := NewPreset(ctx, WorkspaceScope("ws_a3f8d2k9p1m4n7q2"),
			"Summarize", "Short summaries", "writing", "Summarize: {{.text}}", "gpt-4o",
			map[string]any{"temperature": 0.3}, false)
		if err != nil {
			t.Fatalf("NewPreset() error = %v", err)
		}
		return p
	}

	t.Run("partial update leaves other fields intact", func(t *testing.T) {
		p := base()
		newName := "  Summarize v2  "
		isPublic := true
		if err := p.ApplyUpdate(ctx, PresetUpdate{Name: &newName, IsPublic: &isPublic}); err != nil {
			t.Fatalf("ApplyUpdate() error = %v", err)
		}
		if p.Name != "Summarize v2" {
			t.Errorf("Name = %q", p.Name)
		}
		if !p.IsPublic {
			t.Error("IsPublic not updated")
		}
		if p.Description != "Short summaries" || p.Model != "gpt-4o" {
			t.Error("untouched fields changed")
		}
	})

	t.Run("blank field rejected", func(t *testing.T) {
		p := base()
		blank := "   "
		err := p.ApplyUpdate(ctx, PresetUpdate{Template: &blank})
		if err == nil {
			t.Fatal("expected error for blank template")
		}
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("expected VALIDATION error, got %v", err)
		}
		if p.Template != "Summarize: {{.text}}" {
			t.Error("failed update must not mutate the template")
		}
	})

	t.Run("parameters replaced wholesale", func(t *testing.T) {
		p := base()
		if err := p.ApplyUpdate(ctx, PresetUpdate{Parameters: map[string]any{"top_p": 0.9}}); err != nil {
			t.Fatalf("ApplyUpdate() error = %v", err)
		}
		if _, ok := p.Parameters["temperature"]; ok {
			t.Error("old parameters must not survive a replacement")
		}
		if p.Parameters["top_p"] != 0.9 {
			t.Error("new parameters not applied")
		}
	})
}

func TestPreset_Render(t *testing.T) {
	ctx := context.Background()
	p := &Preset{Template: "Translate into {{.language}}: {{.text}}"}

	t.Run("renders variables", func(t *testing.T) {
		out, err := p.Render(ctx, map[string]any{"language": "French", "text": "hello"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if out != "Translate into French: hello" {
			t.Errorf("Render() = %q", out)
		}
	})

	t.Run("no variables returns raw template", func(t *testing.T) {
		out, err := p.Render(ctx, nil)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if out != p.Template {
			t.Errorf("Render() = %q, want raw template", out)
		}
	})

	t.Run("malformed template reported", func(t *testing.T) {
		bad := &Preset{Template: "{{.unclosed"}
		if _, err := bad.Render(ctx, map[string]any{"x": 1}); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestCreatePresetCommand_Scope(t *testing.T) {
	ws := "ws_a3f8d2k9p1m4n7q2"

	scoped := CreatePresetCommand{WorkspaceID: &ws}.Scope()
	if scoped.IsSystem() {
		t.Error("workspace command resolved to system scope")
	}
	if owner, _ := scoped.WorkspaceID(); owner != ws {
		t.Errorf("owner = %q", owner)
	}

	system := CreatePresetCommand{}.Scope()
	if !system.IsSystem() {
		t.Error("nil workspace must resolve to system scope")
	}
}

func TestPresetCommands_Validate(t *testing.T) {
	ctx := context.Background()
	ws := "ws_a3f8d2k9p1m4n7q2"

	valid := CreatePresetCommand{
		WorkspaceID: &ws,
		Name:        "Summarize",
		Description: "Short summaries",
		Category:    "writing",
		Template:    "Summarize: {{.text}}",
		Model:       "gpt-4o",
	}
	if err := valid.Validate(ctx); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	system := valid
	system.WorkspaceID = nil
	if err := system.Validate(ctx); err != nil {
		t.Fatalf("Validate() error for system preset = %v", err)
	}

	badWs := "user_b4g9e3l0q2n5p8r3"
	invalid := valid
	invalid.WorkspaceID = &badWs
	if err := invalid.Validate(ctx); err == nil {
		t.Error("expected error for wrong workspace ID prefix")
	}

	get := GetPresetCommand{PresetID: "conv_a3f8d2k9p1m4n7q2"}
	if err := get.Validate(ctx); err == nil {
		t.Error("expected error for non-preset ID")
	}

	update := UpdatePresetCommand{PresetID: "pre_a3f8d2k9p1m4n7q2"}
	if err := update.Validate(ctx); err != nil {
		t.Fatalf("Validate() error for empty update = %v", err)
	}
}
