package ipaddr_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/gourl/internal/ipaddr"
)

func TestParseIPv4(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"192.168.0.1", "192.168.0.1", false},
		{"192.168.0.1.", "192.168.0.1", false},
		{"0x7f.1", "127.0.0.1", false},
		{"0300.0250.0.1", "192.168.0.1", false},
		{"3232235521", "192.168.0.1", false},
		{"0xC0A80001", "192.168.0.1", false},
		{"192.168.1", "192.168.0.1", false},
		{"0x", "0.0.0.0", false},
		{"4294967295", "255.255.255.255", false},
		{"4294967296", "", true},
		{"256.0.0.1", "", true},
		{"1.2.3.4.5", "", true},
		{"1..2", "", true},
		{"09", "", true},
		{"0xg", "", true},
		{"1.2.3.256", "", true},
		{"99999999999999999999999", "", true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			addr, err := ipaddr.ParseIPv4(c.in)
			if c.wantErr {
				if !errors.Is(err, ipaddr.ErrInvalidIPv4) {
					t.Fatalf("ipaddr.ParseIPv4(%q) error = %v, want %v", c.in, err, ipaddr.ErrInvalidIPv4)
				}
				return
			}
			if err != nil {
				t.Fatalf("ipaddr.ParseIPv4(%q) error = %v, want nil", c.in, err)
			}
			if got := ipaddr.FormatIPv4(addr); got != c.want {
				t.Errorf("ipaddr.FormatIPv4(ipaddr.ParseIPv4(%q)) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestEndsInNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{".", false},
		{"example.com", false},
		{"example.1", true},
		{"example.1.", true},
		{"1.2.3.4", true},
		{"foo.0x", true},
		{"foo.0xz", false},
		{"foo.09", true},
		{"a..", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := ipaddr.EndsInNumber(c.in); got != c.want {
				t.Errorf("ipaddr.EndsInNumber(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestParseIPv6(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"::", "::", false},
		{"::1", "::1", false},
		{"1::", "1::", false},
		{"2001:DB8:0:0:0:0:0:1", "2001:db8::1", false},
		{"2001:db8:0:0:1:0:0:1", "2001:db8::1:0:0:1", false},
		{"0:0:1:0:0:0:0:0", "0:0:1::", false},
		{"1:0:1:0:1:0:1:0", "1:0:1:0:1:0:1:0", false},
		{"::ffff:192.168.0.1", "::ffff:c0a8:1", false},
		{"::127.0.0.1", "::7f00:1", false},
		{"1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8", false},
		{":1", "", true},
		{"1:", "", true},
		{"1::2::3", "", true},
		{"1:2:3:4:5:6:7:8:9", "", true},
		{"1:2:3:4:5:6:7", "", true},
		{"12345::", "", true},
		{"::1.2.3", "", true},
		{"::1.2.3.4.5", "", true},
		{"::01.2.3.4", "", true},
		{"::256.0.0.1", "", true},
		{"1:2:3:4:5:6:7:1.2.3.4", "", true},
		{"::g", "", true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			addr, err := ipaddr.ParseIPv6(c.in)
			if c.wantErr {
				if !errors.Is(err, ipaddr.ErrInvalidIPv6) {
					t.Fatalf("ipaddr.ParseIPv6(%q) error = %v, want %v", c.in, err, ipaddr.ErrInvalidIPv6)
				}
				return
			}
			if err != nil {
				t.Fatalf("ipaddr.ParseIPv6(%q) error = %v, want nil", c.in, err)
			}
			if got := addr.String(); got != c.want {
				t.Errorf("ipaddr.ParseIPv6(%q).String() = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
