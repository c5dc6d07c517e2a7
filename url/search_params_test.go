package url_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/gourl/url"
)

func pairsOf(sp *url.SearchParams) [][2]string {
	var pairs [][2]string
	for k, v := range sp.All() {
		pairs = append(pairs, [2]string{k, v})
	}
	return pairs
}

func TestParseSearchParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want [][2]string
	}{
		{"", nil},
		{"?", nil},
		{"a=1", [][2]string{{"a", "1"}}},
		{"?a=1&&b", [][2]string{{"a", "1"}, {"b", ""}}},
		{"a=b=c", [][2]string{{"a", "b=c"}}},
		{"=x", [][2]string{{"", "x"}}},
		{"q=a+b%20c", [][2]string{{"q", "a b c"}}},
		{"%E2%82%AC=%zz", [][2]string{{"€", "%zz"}}},
		{"x=%FF", [][2]string{{"x", "�"}}},
		{"a=1&a=2", [][2]string{{"a", "1"}, {"a", "2"}}},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got := pairsOf(url.ParseSearchParams(c.in))
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("url.ParseSearchParams(%q) mismatch\ndiff (-got +want):\n%v", c.in, diff)
			}
		})
	}
}

func TestSearchParams_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		pairs [][2]string
		want  string
	}{
		{"empty", nil, ""},
		{"simple", [][2]string{{"a", "1"}, {"b", "2"}}, "a=1&b=2"},
		{"space", [][2]string{{"q", "a b"}}, "q=a+b"},
		{"reserved", [][2]string{{"a&b", "c=d+e"}}, "a%26b=c%3Dd%2Be"},
		{"unreserved", [][2]string{{"*-._", "~!"}}, "*-._=%7E%21"},
		{"empty value", [][2]string{{"k", ""}}, "k="},
		{"non-ascii", [][2]string{{"€", "é"}}, "%E2%82%AC=%C3%A9"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := url.NewSearchParams(c.pairs...).String(); got != c.want {
				t.Errorf("sp.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestSearchParams_Mutation(t *testing.T) {
	t.Parallel()

	sp := url.ParseSearchParams("a=1&b=2&a=3&c=4&a=5")
	if got := sp.Len(); got != 5 {
		t.Fatalf("sp.Len() = %d, want 5", got)
	}
	if v, ok := sp.Get("a"); !ok || v != "1" {
		t.Errorf("sp.Get(\"a\") = %q, %v, want \"1\", true", v, ok)
	}
	if _, ok := sp.Get("z"); ok {
		t.Error("sp.Get(\"z\") ok = true, want false")
	}
	if !sp.Has("c") || sp.Has("z") {
		t.Errorf("sp.Has() = %v, %v, want true, false", sp.Has("c"), sp.Has("z"))
	}
	if !sp.HasValue("a", "3") || sp.HasValue("a", "4") {
		t.Errorf("sp.HasValue() = %v, %v, want true, false", sp.HasValue("a", "3"), sp.HasValue("a", "4"))
	}

	sp.Set("a", "x")
	if got, want := sp.String(), "a=x&b=2&c=4"; got != want {
		t.Errorf("after Set sp.String() = %q, want %q", got, want)
	}
	sp.Set("d", "y")
	if got, want := sp.String(), "a=x&b=2&c=4&d=y"; got != want {
		t.Errorf("after Set new sp.String() = %q, want %q", got, want)
	}

	sp.Append("b", "3")
	sp.DeleteValue("b", "2")
	if got, want := sp.String(), "a=x&c=4&d=y&b=3"; got != want {
		t.Errorf("after DeleteValue sp.String() = %q, want %q", got, want)
	}
	sp.Delete("a")
	if got, want := sp.String(), "c=4&d=y&b=3"; got != want {
		t.Errorf("after Delete sp.String() = %q, want %q", got, want)
	}

	if got, want := slices.Collect(sp.Keys()), []string{"c", "d", "b"}; !cmp.Equal(got, want) {
		t.Errorf("sp.Keys() = %q, want %q", got, want)
	}
	if got, want := slices.Collect(sp.Values()), []string{"4", "y", "3"}; !cmp.Equal(got, want) {
		t.Errorf("sp.Values() = %q, want %q", got, want)
	}
	if got, want := maps.Collect(sp.All()), map[string]string{"c": "4", "d": "y", "b": "3"}; !cmp.Equal(got, want) {
		t.Errorf("sp.All() = %v, want %v", got, want)
	}

	sp.Reset("?z=1")
	if got, want := sp.String(), "z=1"; got != want {
		t.Errorf("after Reset sp.String() = %q, want %q", got, want)
	}
}

func TestSearchParams_Sort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want [][2]string
	}{
		{"z=b&a=b&z=a&a=a", [][2]string{{"a", "b"}, {"a", "a"}, {"z", "b"}, {"z", "a"}}},
		{"�=x&\U0001F308=y", [][2]string{{"\U0001F308", "y"}, {"�", "x"}}},
		{"ﬃ&🌈", [][2]string{{"🌈", ""}, {"ﬃ", ""}}},
		{"\u00e9&e\uffff&e\u0301", [][2]string{{"e\u0301", ""}, {"e\uffff", ""}, {"\u00e9", ""}}},
		{"bb&a&b", [][2]string{{"a", ""}, {"b", ""}, {"bb", ""}}},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			sp := url.ParseSearchParams(c.in)
			sp.Sort()
			if diff := cmp.Diff(pairsOf(sp), c.want); diff != "" {
				t.Errorf("sp.Sort() mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}

func TestSearchParams_Equal(t *testing.T) {
	t.Parallel()

	sp := url.ParseSearchParams("a=1&b=2")
	if !sp.Equal(url.NewSearchParams([2]string{"a", "1"}, [2]string{"b", "2"})) {
		t.Error("sp.Equal(same pairs) = false, want true")
	}
	if sp.Equal(url.ParseSearchParams("b=2&a=1")) {
		t.Error("sp.Equal(other order) = true, want false")
	}
	if !sp.Equal(*sp.Clone()) {
		t.Error("sp.Equal(clone value) = false, want true")
	}
	if sp.Equal("a=1&b=2") {
		t.Error("sp.Equal(string) = true, want false")
	}

	clone := sp.Clone()
	clone.Append("c", "3")
	if sp.Len() != 2 {
		t.Errorf("sp.Len() after clone mutation = %d, want 2", sp.Len())
	}

	var nilSP *url.SearchParams
	if nilSP.Len() != 0 || nilSP.Has("a") || nilSP.String() != "" {
		t.Error("nil search params is not empty")
	}
}

func TestSearchParams_MarshalText(t *testing.T) {
	t.Parallel()

	sp := url.NewSearchParams([2]string{"a b", "c"})
	text, err := sp.MarshalText()
	if err != nil {
		t.Fatalf("sp.MarshalText() error = %v, want nil", err)
	}
	if got, want := string(text), "a+b=c"; got != want {
		t.Errorf("sp.MarshalText() = %q, want %q", got, want)
	}

	var sp2 url.SearchParams
	if err := sp2.UnmarshalText(text); err != nil {
		t.Fatalf("sp.UnmarshalText() error = %v, want nil", err)
	}
	if !sp2.Equal(sp) {
		t.Errorf("sp.UnmarshalText() = %v, want %v", sp2.String(), sp.String())
	}
}
