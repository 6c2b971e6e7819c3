package extract

import "testing"

const sidebarPage = `{{sidebar individual
|name = Miles O'Brien
|species = [[Human]]
|status = Active
|born = 2328, [[Dublin]], [[Earth]]
|spouse = [[Keiko O'Brien]]
|children = [[Molly O'Brien]]<br>[[Kirayoshi O'Brien]] ([[nickname]]d "Yoshi")
|actor = [[Colm Meaney]]
}}
'''Miles O'Brien''' was a Starfleet engineer.`

func TestFields(t *testing.T) {
	fields := Fields(sidebarPage, "sidebar individual")

	want := map[string]string{
		"name":     "Miles O'Brien",
		"species":  "Human",
		"status":   "Active",
		"born":     "2328, Dublin, Earth",
		"spouse":   "Keiko O'Brien",
		"children": `Molly O'Brien; Kirayoshi O'Brien (nicknamed "Yoshi")`,
		"actor":    "Colm Meaney",
	}
	for key, val := range want {
		if got := fields[key]; got != val {
			t.Errorf("field %q = %q, want %q", key, got, val)
		}
	}
}

func TestFieldsAbsentTemplate(t *testing.T) {
	fields := Fields("no template here", "sidebar individual")
	if len(fields) != 0 {
		t.Errorf("expected empty mapping, got %v", fields)
	}
}

func TestFieldsNestedTemplateValue(t *testing.T) {
	page := `{{sidebar individual
|born = 2372, {{USS|Enterprise|NCC-1701-D|-D}}
|status = Active
}}`
	fields := Fields(page, "sidebar individual")
	if got, want := fields["born"], "2372, USS Enterprise-D"; got != want {
		t.Errorf("born = %q, want %q", got, want)
	}
	if got, want := fields["status"], "Active"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestSidebarFieldsFallback(t *testing.T) {
	page := `{{infobox person
|species = Bajoran
}}`
	fields := SidebarFields(page)
	if got := fields["species"]; got != "Bajoran" {
		t.Errorf("species = %q, want Bajoran", got)
	}
}

func TestRawField(t *testing.T) {
	raw := RawField(sidebarPage, "sidebar individual", "spouse")
	if raw != "[[Keiko O'Brien]]" {
		t.Errorf("RawField spouse = %q, want link markup preserved", raw)
	}
}
