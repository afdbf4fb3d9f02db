package measure

import (
	"testing"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func TestDefaultGroupsOrder(t *testing.T) {
	got := Default().Groups()
	want := []Group{
		GroupGeneral, GroupStatistical, GroupInfoTheory, GroupModelBased,
		GroupLandmarking, GroupClustering, GroupComplexity,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("groups[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolve_Groups(t *testing.T) {
	r := Default()

	general, err := r.Resolve([]string{"general"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(general) != 10 {
		t.Fatalf("general group has %d measures, want 10", len(general))
	}
	if general[0].Name != "attr_to_inst" {
		t.Errorf("first general measure = %q, want attr_to_inst", general[0].Name)
	}
	for _, d := range general {
		if d.Group != GroupGeneral {
			t.Errorf("measure %q resolved outside its group", d.Name)
		}
	}

	all, err := r.Resolve(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(r.Measures()) {
		t.Errorf("empty group selection resolved %d measures, want all %d", len(all), len(r.Measures()))
	}

	explicit, err := r.Resolve([]string{"all"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(explicit) != len(all) {
		t.Errorf(`"all" resolved %d measures, want %d`, len(explicit), len(all))
	}
}

func TestResolve_UnknownGroup(t *testing.T) {
	_, err := Default().Resolve([]string{"generall"}, nil)
	var cfgErr *errors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestResolve_FeaturesOverrideGroups(t *testing.T) {
	r := Default()

	selected, err := r.Resolve([]string{"general"}, []string{"mean", "nr_inst"})
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 2 {
		t.Fatalf("resolved %d measures, want 2", len(selected))
	}
	// Output order follows registration order, not request order.
	if selected[0].Name != "nr_inst" || selected[1].Name != "mean" {
		t.Errorf("got order [%s %s], want [nr_inst mean]", selected[0].Name, selected[1].Name)
	}
}

func TestResolve_UnknownFeatureSuggestsClosest(t *testing.T) {
	_, err := Default().Resolve(nil, []string{"nr_ins"})

	var unknown *errors.UnknownMeasureError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMeasureError, got %v", err)
	}
	found := false
	for _, name := range unknown.Closest {
		if name == "nr_inst" {
			found = true
		}
	}
	if !found {
		t.Errorf("closest suggestions %v do not include nr_inst", unknown.Closest)
	}
}

func TestValidateArgs(t *testing.T) {
	d, ok := Default().Lookup("nr_cor_attr")
	if !ok {
		t.Fatal("nr_cor_attr not registered")
	}

	if err := d.ValidateArgs(Args{"threshold": 0.7}); err != nil {
		t.Errorf("valid override rejected: %v", err)
	}
	if err := d.ValidateArgs(Args{"threshold": 1}); err != nil {
		t.Errorf("integer value for float parameter rejected: %v", err)
	}

	var cfgErr *errors.ConfigurationError
	if err := d.ValidateArgs(Args{"cutoff": 0.7}); !errors.As(err, &cfgErr) {
		t.Errorf("unknown parameter accepted: %v", err)
	}
	if err := d.ValidateArgs(Args{"threshold": "high"}); !errors.As(err, &cfgErr) {
		t.Errorf("incompatible type accepted: %v", err)
	}
}

func TestArgsSignature(t *testing.T) {
	a := Args{"bins": 10, "scale": "none"}
	b := Args{"scale": "none", "bins": 10}
	if a.Signature() != b.Signature() {
		t.Errorf("signatures differ for equal maps: %q vs %q", a.Signature(), b.Signature())
	}
	if a.Signature() != "bins=10,scale=none" {
		t.Errorf("signature = %q", a.Signature())
	}
	if (Args{}).Signature() != "" {
		t.Errorf("empty signature = %q", (Args{}).Signature())
	}
}
