package syllable

import "testing"

func TestAffixable(t *testing.T) {
	tests := []struct {
		name string
		syl  string
		want bool
	}{
		{name: "open syllable", syl: "བདེ", want: true},
		{name: "ends in closing ra", syl: "ཀར", want: false},
		{name: "ends in closing sa", syl: "ཤིས", want: false},
		{name: "ends in genitive", syl: "མཐའི", want: false},
		{name: "ends in closing ma", syl: "ཁྱིམ", want: false},
		{name: "ends in closing nga", syl: "གང", want: false},
		{name: "bare ra is not a proper ending", syl: "ར", want: true},
		{name: "trailing achung", syl: "མཐའ", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Affixable(tt.syl); got != tt.want {
				t.Errorf("Affixable(%q) = %v, want %v", tt.syl, got, tt.want)
			}
		})
	}
}

func TestAllAffixed(t *testing.T) {
	forms := AllAffixed("བདེ")

	if len(forms) != len(Affixes) {
		t.Fatalf("AllAffixed returned %d forms, want %d", len(forms), len(Affixes))
	}

	byForm := make(map[string]Affixed, len(forms))
	for _, f := range forms {
		byForm[f.Form] = f
	}

	la, ok := byForm["བདེར"]
	if !ok {
		t.Fatal("missing la-affixed form བདེར")
	}
	if la.Len != 1 || la.Kind != "la" || la.DroppedAa {
		t.Errorf("བདེར = %+v, want Len=1 Kind=la DroppedAa=false", la)
	}

	gi, ok := byForm["བདེའི"]
	if !ok {
		t.Fatal("missing genitive form བདེའི")
	}
	if gi.Len != 2 || gi.Kind != "gi" {
		t.Errorf("བདེའི = %+v, want Len=2 Kind=gi", gi)
	}
}

func TestAllAffixed_dropsTrailingAchung(t *testing.T) {
	forms := AllAffixed("མཐའ")

	for _, f := range forms {
		if !f.DroppedAa {
			t.Errorf("form %q has DroppedAa=false, want true", f.Form)
		}
	}

	want := "མཐར"
	found := false
	for _, f := range forms {
		if f.Form == want {
			found = true
		}
	}
	if !found {
		t.Errorf("AllAffixed(མཐའ) missing %q, got %v", want, forms)
	}
}

func TestAllAffixed_deterministicOrder(t *testing.T) {
	a := AllAffixed("བདེ")
	b := AllAffixed("བདེ")

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("form order differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestIsDagdra(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"པ་", true},
		{"པོ་", true},
		{"བ་", true},
		{"བོ་", true},
		{"པ", true}, // tsek added when missing
		{"ཀ་", false},
		{"པར་", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDagdra(tt.text); got != tt.want {
			t.Errorf("IsDagdra(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
