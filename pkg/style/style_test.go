package style

import "testing"

type recorder struct {
	classes []string
	text    string
}

func (r *recorder) Inject(class, css string) {
	r.classes = append(r.classes, class)
	r.text += css
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{
			name:  "declarations and nested rule",
			style: Style{"backgroundColor": "red", "> span": Style{"color": "blue"}},
			want:  ".vs1{background-color:red;}.vs1 > span{color:blue;}",
		},
		{
			name:  "ampersand and pseudo class",
			style: Style{"&.active": Style{"color": "red"}, ":hover": map[string]any{"opacity": 0.5}},
			want:  ".vs1.active{color:red;}.vs1:hover{opacity:0.5;}",
		},
		{
			name:  "only nested rules",
			style: Style{"p": Style{"marginTop": "1em"}},
			want:  ".vs1 p{margin-top:1em;}",
		},
		{
			name:  "important",
			style: Style{"color": "red !important"},
			want:  ".vs1{color:red !important;}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render("vs1", tt.style); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"color":           "color",
		"backgroundColor": "background-color",
		"borderTopWidth":  "border-top-width",
		"-webkit-box":     "-webkit-box",
	}
	for in, want := range tests {
		if got := Kebab(in); got != want {
			t.Errorf("Kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSheetScopeMemoized(t *testing.T) {
	rec := &recorder{}
	sheet := NewSheet("", rec)

	st := Style{"color": "blue"}
	a := sheet.Scope("owner-a", st)
	again := sheet.Scope("owner-a", st)
	b := sheet.Scope("owner-b", Style{"color": "red"})

	if a != "vs1" || again != "vs1" {
		t.Errorf("owner-a classes = %q, %q, want vs1 twice", a, again)
	}
	if b != "vs2" {
		t.Errorf("owner-b class = %q, want vs2", b)
	}
	if len(rec.classes) != 2 {
		t.Fatalf("injected %d times, want 2", len(rec.classes))
	}
	if rec.text != ".vs1{color:blue;}.vs2{color:red;}" {
		t.Errorf("injected text = %q", rec.text)
	}
	if sheet.Len() != 2 {
		t.Errorf("Len() = %d, want 2", sheet.Len())
	}
}

func TestClassGeneratorPrefix(t *testing.T) {
	g := NewClassGenerator("x")
	if got := g.Next(); got != "x1" {
		t.Errorf("Next() = %q, want x1", got)
	}
	if got := g.Next(); got != "x2" {
		t.Errorf("Next() = %q, want x2", got)
	}
}
