package options

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func envOf(vars map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveScenarios(t *testing.T) {
	t.Parallel()

	set := Resolve(EnvSource("PERF_", envOf(map[string]string{
		"PERF_NUM_ITERS":     "5",
		"PERF_DOC_SIZES":     "(1024,2048,4096)",
		"PERF_OUTPUT_STDOUT": "true",
	})))

	testCases := []struct {
		name    Name
		want    string
		present bool
	}{
		{NumIters, "5", true},
		{APIKey, "", false},
		{DocSizes, "(1024,2048,4096)", true},
		{OutputStdout, "true", true},
		{OutputStitch, "", false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.name), func(t *testing.T) {
			got, ok := set.Get(tc.name).Get()
			if ok != tc.present {
				t.Fatalf("expected present=%v, got %v", tc.present, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveWithoutSourcesLeavesEverythingAbsent(t *testing.T) {
	t.Parallel()

	set := Resolve()
	for _, entry := range set.Entries() {
		if entry.Value.IsSet() {
			t.Fatalf("expected %s to be absent", entry.Name)
		}
		if entry.Value == Of("") {
			t.Fatalf("absent value for %s must differ from empty text", entry.Name)
		}
	}
	if set.Present() != 0 {
		t.Fatalf("expected no present options, got %d", set.Present())
	}
}

func TestResolveKeepsDefinedEmptyValue(t *testing.T) {
	t.Parallel()

	set := Resolve(EnvSource("PERF_", envOf(map[string]string{"PERF_HOSTNAME": ""})))
	got, ok := set.Get(Hostname).Get()
	if !ok || got != "" {
		t.Fatalf("expected present empty value, got %q (present=%v)", got, ok)
	}
}

func TestResolveEveryName(t *testing.T) {
	t.Parallel()

	vars := make(map[string]string)
	for _, name := range Names() {
		vars["PERF_"+string(name)] = "x"
	}
	set := Resolve(EnvSource("PERF_", envOf(vars)))

	for _, spec := range Specs() {
		want := "x"
		if spec.Wrapped {
			want = "(x)"
		}
		if got := set.Get(spec.Name).Or("missing"); got != want {
			t.Fatalf("%s: expected %q, got %q", spec.Name, want, got)
		}
	}
	if set.Present() != len(Names()) {
		t.Fatalf("expected all %d options present, got %d", len(Names()), set.Present())
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	high := MapSource{NumIters: "10"}
	low := MapSource{NumIters: "1", NumDocs: "3"}

	set := Resolve(high, nil, low)

	if got := set.Get(NumIters).Or(""); got != "10" {
		t.Fatalf("expected higher precedence source to win, got %q", got)
	}
	if got := set.Get(NumDocs).Or(""); got != "3" {
		t.Fatalf("expected fallback to lower source, got %q", got)
	}
}

func TestResolveStringifiesWhitespace(t *testing.T) {
	t.Parallel()

	set := Resolve(MapSource{
		StitchHost: "  http://localhost:9090 \n",
		DocSizes:   "(1024,  2048,\t4096)",
	})

	if got := set.Get(StitchHost).Or(""); got != "http://localhost:9090" {
		t.Fatalf("unexpected host %q", got)
	}
	if got := set.Get(DocSizes).Or(""); got != "(1024, 2048, 4096)" {
		t.Fatalf("unexpected doc sizes %q", got)
	}
}

func TestResolveWrapsListOptions(t *testing.T) {
	t.Parallel()

	set := Resolve(MapSource{
		ChangeEventPercentages: "0.0,0.01,0.1",
		ConflictPercentages:    "(0.1,0.5)",
		OutputRaw:              "(a),(b)",
		DocSizes:               "1024,2048",
	})

	want := map[Name]string{
		ChangeEventPercentages: "(0.0,0.01,0.1)",
		ConflictPercentages:    "(0.1,0.5)",
		OutputRaw:              "((a),(b))",
		DocSizes:               "1024,2048",
	}
	got := make(map[Name]string, len(want))
	for name := range want {
		got[name] = set.Get(name).Or("")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestSetGetUnknownName(t *testing.T) {
	t.Parallel()

	set := Resolve(MapSource{NumIters: "5"})
	if set.Get("NOT_AN_OPTION").IsSet() {
		t.Fatalf("expected unknown name to be absent")
	}

	var zero Set
	if zero.Get(NumIters).IsSet() {
		t.Fatalf("expected zero Set to report absent values")
	}
}

func TestEntriesReturnsFreshSliceInCatalogOrder(t *testing.T) {
	t.Parallel()

	set := Resolve(MapSource{NumIters: "5"})
	entries := set.Entries()

	names := make([]Name, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	if diff := cmp.Diff(Names(), names); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	entries[2].Value = Of("999")
	if got := set.Get(NumIters).Or(""); got != "5" {
		t.Fatalf("expected set to be unaffected by caller mutation, got %q", got)
	}
}

func TestSetIsSource(t *testing.T) {
	t.Parallel()

	base := Resolve(MapSource{ConflictPercentages: "0.5"})
	again := Resolve(base)

	if got := again.Get(ConflictPercentages).Or(""); got != "(0.5)" {
		t.Fatalf("expected wrapping to be stable, got %q", got)
	}
}

func TestSetConcurrentReads(t *testing.T) {
	set := Resolve(MapSource{NumIters: "5", Hostname: "bench-01"})
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := set.Get(NumIters).Or(""); got != "5" {
				t.Errorf("unexpected value %q", got)
			}
			_ = set.Entries()
		}()
	}

	wg.Wait()
}

func TestDefaultIsResolvedOnce(t *testing.T) {
	t.Setenv("PERF_NUM_OUTLIERS", "2")

	first := Default()
	if got, ok := first.Get(NumOutliers).Get(); !ok || got != "2" {
		t.Fatalf("expected environment value \"2\", got %q (present=%v)", got, ok)
	}
	t.Setenv("PERF_NUM_OUTLIERS", "7")
	second := Default()

	if diff := cmp.Diff(first.Entries(), second.Entries(), cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("expected repeated reads to match (-first +second):\n%s", diff)
	}
}

func TestBuildSource(t *testing.T) {
	prev := buildNumIters
	t.Cleanup(func() { buildNumIters = prev })

	buildNumIters = "12"
	set := Resolve(BuildSource())
	if got := set.Get(NumIters).Or(""); got != "12" {
		t.Fatalf("expected link-time value, got %q", got)
	}
	if set.Get(APIKey).IsSet() {
		t.Fatalf("expected empty link-time value to be absent")
	}
}

func TestNewMapSource(t *testing.T) {
	t.Parallel()

	src, err := NewMapSource(map[string]string{"perf_num_docs": "(10,20)", "HOSTNAME": "ci"}, "PERF_")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MapSource{NumDocs: "(10,20)", Hostname: "ci"}
	if diff := cmp.Diff(want, src); diff != "" {
		t.Fatalf("unexpected source (-want +got):\n%s", diff)
	}

	if _, err := NewMapSource(map[string]string{"BOGUS": "1"}, "PERF_"); !errors.Is(err, ErrUnknownName) {
		t.Fatalf("expected ErrUnknownName, got %v", err)
	}

	dup := map[string]string{"NUM_ITERS": "1", "perf_num_iters": "2"}
	for i := 0; i < 20; i++ {
		if _, err := NewMapSource(dup, "PERF_"); !errors.Is(err, ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
	}
}
