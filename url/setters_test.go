package url_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gourl/url"
)

func TestURL_Setters(t *testing.T) {
	t.Parallel()

	noErr := func(f func(*url.URL)) func(*url.URL) error {
		return func(u *url.URL) error { f(u); return nil }
	}

	cases := []struct {
		name    string
		in      string
		set     func(*url.URL) error
		want    string
		wantErr error
	}{
		// href
		{"href", "http://example.com/", func(u *url.URL) error { return u.SetHref("wss://h:1/x") }, "wss://h:1/x", nil},
		{"href invalid", "http://example.com/", func(u *url.URL) error { return u.SetHref("x") }, "http://example.com/", url.ErrMissingScheme},

		// protocol
		{"protocol special", "http://example.com:443/", func(u *url.URL) error { return u.SetProtocol("https") }, "https://example.com/", nil},
		{"protocol with tail", "http://example.com/", func(u *url.URL) error { return u.SetProtocol("WS:junk") }, "ws://example.com/", nil},
		{"protocol to non-special", "http://example.com/", func(u *url.URL) error { return u.SetProtocol("foo") }, "http://example.com/", nil},
		{"protocol to special", "foo://example.com/", func(u *url.URL) error { return u.SetProtocol("http") }, "foo://example.com/", nil},
		{"protocol non-special", "foo://example.com/", func(u *url.URL) error { return u.SetProtocol("bar") }, "bar://example.com/", nil},
		{"protocol to file with credentials", "http://u@example.com/", func(u *url.URL) error { return u.SetProtocol("file") }, "http://u@example.com/", nil},
		{"protocol to file with port", "http://example.com:81/", func(u *url.URL) error { return u.SetProtocol("file") }, "http://example.com:81/", nil},
		{"protocol from file with empty host", "file:///x", func(u *url.URL) error { return u.SetProtocol("http") }, "file:///x", nil},
		{"protocol invalid", "http://example.com/", func(u *url.URL) error { return u.SetProtocol("1x") }, "http://example.com/", url.ErrInvalidScheme},
		{"protocol empty", "http://example.com/", func(u *url.URL) error { return u.SetProtocol("") }, "http://example.com/", url.ErrInvalidScheme},
		{"protocol bad char", "foo://example.com/", func(u *url.URL) error { return u.SetProtocol("b_r") }, "foo://example.com/", url.ErrInvalidScheme},
		{"protocol with tab", "foo://example.com/", func(u *url.URL) error { return u.SetProtocol("b\tar+x.y-z") }, "bar+x.y-z://example.com/", nil},

		// username and password
		{"username", "http://example.com/", func(u *url.URL) error { return u.SetUsername("us er@") }, "http://us%20er%40@example.com/", nil},
		{"password", "http://example.com/", func(u *url.URL) error { return u.SetPassword("p:w") }, "http://:p%3Aw@example.com/", nil},
		{"clear username", "http://u:p@example.com/", func(u *url.URL) error { return u.SetUsername("") }, "http://:p@example.com/", nil},
		{"clear credentials", "http://u@example.com/", func(u *url.URL) error { return u.SetUsername("") }, "http://example.com/", nil},
		{"username on opaque", "mailto:x", func(u *url.URL) error { return u.SetUsername("u") }, "mailto:x", url.ErrCannotHaveCredentials},
		{"username on file", "file:///x", func(u *url.URL) error { return u.SetUsername("u") }, "file:///x", url.ErrCannotHaveCredentials},
		{"password on empty host", "foo:///x", func(u *url.URL) error { return u.SetPassword("p") }, "foo:///x", url.ErrCannotHaveCredentials},
		{"username controls", "http://example.net/", func(u *url.URL) error { return u.SetUsername("\x00\x01\t\n\r") }, "http://%00%01%09%0A%0D@example.net/", nil},
		{"username tab", "http://example.net/", func(u *url.URL) error { return u.SetUsername("a\tb") }, "http://a%09b@example.net/", nil},
		{"password controls", "http://example.net/", func(u *url.URL) error { return u.SetPassword("\t\n\r\x1f") }, "http://:%09%0A%0D%1F@example.net/", nil},

		// host
		{"host with default port", "http://example.com/", func(u *url.URL) error { return u.SetHost("other.org:80") }, "http://other.org/", nil},
		{"host with port", "http://example.com/", func(u *url.URL) error { return u.SetHost("other.org:8080x") }, "http://other.org:8080/", nil},
		{"host with bad port", "http://example.com:81/", func(u *url.URL) error { return u.SetHost("other.org:99999") }, "http://other.org:81/", nil},
		{"host with path", "http://example.com/x", func(u *url.URL) error { return u.SetHost("other.org/y") }, "http://other.org/x", nil},
		{"host ipv4", "http://example.com/", func(u *url.URL) error { return u.SetHost("0x7f.1") }, "http://127.0.0.1/", nil},
		{"host ipv6", "http://example.com/", func(u *url.URL) error { return u.SetHost("[0:0::1]:81") }, "http://[::1]:81/", nil},
		{"host empty special", "http://example.com/", func(u *url.URL) error { return u.SetHost("") }, "http://example.com/", url.ErrInvalidHost},
		{"host empty with port", "foo://example.com/", func(u *url.URL) error { return u.SetHost(":81") }, "foo://example.com/", url.ErrInvalidHost},
		{"host empty non-special", "foo://example.com/p", func(u *url.URL) error { return u.SetHost("") }, "foo:///p", nil},
		{"host empty with credentials", "foo://u@example.com/p", func(u *url.URL) error { return u.SetHost("") }, "foo://u@example.com/p", url.ErrCannotHaveCredentials},
		{"host forbidden", "http://example.com/", func(u *url.URL) error { return u.SetHost("a<b") }, "http://example.com/", url.ErrInvalidHost},
		{"host opaque path", "mailto:x", func(u *url.URL) error { return u.SetHost("example.com") }, "mailto:x", url.ErrOpaquePath},
		{"host file", "file:///x", func(u *url.URL) error { return u.SetHost("server") }, "file://server/x", nil},
		{"host file localhost", "file://server/x", func(u *url.URL) error { return u.SetHost("LOCALHOST") }, "file:///x", nil},
		{"hostname", "http://example.com:81/", func(u *url.URL) error { return u.SetHostname("EXAMPLE.org") }, "http://example.org:81/", nil},
		{"hostname with port", "http://example.com/", func(u *url.URL) error { return u.SetHostname("h:1") }, "http://example.com/", url.ErrInvalidHost},

		// port
		{"port", "http://example.com/", func(u *url.URL) error { return u.SetPort("8080") }, "http://example.com:8080/", nil},
		{"port default", "http://example.com:81/", func(u *url.URL) error { return u.SetPort("80") }, "http://example.com/", nil},
		{"port leading digits", "http://example.com/", func(u *url.URL) error { return u.SetPort("12ab") }, "http://example.com:12/", nil},
		{"port clear", "http://example.com:81/", func(u *url.URL) error { return u.SetPort("") }, "http://example.com/", nil},
		{"port not a number", "http://example.com:81/", func(u *url.URL) error { return u.SetPort("x") }, "http://example.com:81/", url.ErrInvalidPort},
		{"port out of range", "http://example.com:81/", func(u *url.URL) error { return u.SetPort("65536") }, "http://example.com:81/", url.ErrInvalidPort},
		{"port on file", "file:///x", func(u *url.URL) error { return u.SetPort("1") }, "file:///x", url.ErrCannotHaveCredentials},

		// pathname
		{"pathname", "http://example.com/", func(u *url.URL) error { return u.SetPathname("a b/?#") }, "http://example.com/a%20b/%3F%23", nil},
		{"pathname dots", "http://example.com/a", func(u *url.URL) error { return u.SetPathname("b/../c") }, "http://example.com/c", nil},
		{"pathname backslash", "http://example.com/", func(u *url.URL) error { return u.SetPathname("\\a\\b") }, "http://example.com/a/b", nil},
		{"pathname empty special", "http://example.com/x", func(u *url.URL) error { return u.SetPathname("") }, "http://example.com/", nil},
		{"pathname empty with host", "foo://h/x", func(u *url.URL) error { return u.SetPathname("") }, "foo://h", nil},
		{"pathname empty without host", "foo:/x", func(u *url.URL) error { return u.SetPathname("") }, "foo:/", nil},
		{"pathname double slash", "foo:/x", func(u *url.URL) error { return u.SetPathname("//y") }, "foo:/.//y", nil},
		{"pathname drive letter", "file:///x", func(u *url.URL) error { return u.SetPathname("C|/y") }, "file:///C:/y", nil},
		{"pathname opaque", "mailto:x", func(u *url.URL) error { return u.SetPathname("y") }, "mailto:x", url.ErrOpaquePath},

		// search and hash
		{"search", "http://example.com/", noErr(func(u *url.URL) { u.SetSearch("a b'") }), "http://example.com/?a%20b%27", nil},
		{"search non-special", "foo://example.com/", noErr(func(u *url.URL) { u.SetSearch("a b'") }), "foo://example.com/?a%20b'", nil},
		{"search leading mark", "http://example.com/", noErr(func(u *url.URL) { u.SetSearch("?q=1") }), "http://example.com/?q=1", nil},
		{"search only mark", "http://example.com/", noErr(func(u *url.URL) { u.SetSearch("?") }), "http://example.com/?", nil},
		{"search only tab", "http://example.net/", noErr(func(u *url.URL) { u.SetSearch("\t") }), "http://example.net/?", nil},
		{"search mark and newline", "http://example.net/?q", noErr(func(u *url.URL) { u.SetSearch("?\n") }), "http://example.net/?", nil},
		{"search clear", "http://example.com/?q#f", noErr(func(u *url.URL) { u.SetSearch("") }), "http://example.com/#f", nil},
		{"search clear opaque", "data:space    ?query", noErr(func(u *url.URL) { u.SetSearch("") }), "data:space", nil},
		{"hash", "http://example.com/", noErr(func(u *url.URL) { u.SetHash("#x y") }), "http://example.com/#x%20y", nil},
		{"hash clear", "http://example.com/?q#f", noErr(func(u *url.URL) { u.SetHash("") }), "http://example.com/?q", nil},
		{"hash only tab", "http://example.net/", noErr(func(u *url.URL) { u.SetHash("\t") }), "http://example.net/#", nil},
		{"hash mark and newline", "http://example.net/#f", noErr(func(u *url.URL) { u.SetHash("#\r\n") }), "http://example.net/#", nil},
		{"hash clear opaque", "data:space    #frag", noErr(func(u *url.URL) { u.SetHash("") }), "data:space", nil},
		{"hash clear opaque with query", "data:space  ?q#frag", noErr(func(u *url.URL) { u.SetHash("") }), "data:space  ?q", nil},

		// tabs and newlines
		{"host with newline", "http://example.com/", func(u *url.URL) error { return u.SetHost("oth\ner.org") }, "http://other.org/", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := mustParse(t, c.in)
			err := c.set(u)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("set error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got := u.Href(); got != c.want {
				t.Errorf("u.Href() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestURL_SetSearchParams(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://example.com/?a=1&b=2&a=3#f")
	sp := u.SearchParams()
	if got, want := sp.GetAll("a"), []string{"1", "3"}; !cmp.Equal(got, want) {
		t.Fatalf("sp.GetAll(\"a\") = %q, want %q", got, want)
	}

	sp.Set("a", "x y")
	u.SetSearchParams(sp)
	if got, want := u.Href(), "http://example.com/?a=x+y&b=2#f"; got != want {
		t.Errorf("u.Href() = %q, want %q", got, want)
	}

	u.SetSearchParams(url.NewSearchParams())
	if got, want := u.Href(), "http://example.com/#f"; got != want {
		t.Errorf("u.Href() = %q, want %q", got, want)
	}
}
