package license

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestSetupRequiresLicense(t *testing.T) {
	err := setup(env(nil),
		func(string) error { t.Fatal("metered key set without env"); return nil },
		func(string, string) error { t.Fatal("key set without env"); return nil })
	if err == nil {
		t.Fatalf("missing license accepted")
	}
	if !strings.Contains(err.Error(), "UNIDOC_LICENSE_API_KEY") {
		t.Fatalf("error does not name the env vars: %v", err)
	}
}

func TestSetupMeteredKey(t *testing.T) {
	var got string
	err := setup(env(map[string]string{"UNIDOC_LICENSE_API_KEY": "key-123"}),
		func(key string) error { got = key; return nil },
		func(string, string) error { t.Fatal("offline key used"); return nil })
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if got != "key-123" {
		t.Fatalf("metered key = %q", got)
	}

	err = setup(env(map[string]string{"UNIDOC_LICENSE_API_KEY": "bad"}),
		func(string) error { return errors.New("rejected") },
		nil)
	if err == nil {
		t.Fatalf("rejected metered key accepted")
	}
}

func TestSetupKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.txt")
	if err := os.WriteFile(path, []byte("KEY CONTENT"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var gotContent, gotCustomer string
	err := setup(env(map[string]string{
		"UNIPDF_LICENSE_PATH":  path,
		"UNIPDF_CUSTOMER_NAME": "Acme",
	}),
		func(string) error { t.Fatal("metered key used"); return nil },
		func(content, customer string) error {
			gotContent, gotCustomer = content, customer
			return nil
		})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if gotContent != "KEY CONTENT" || gotCustomer != "Acme" {
		t.Fatalf("key = %q customer = %q", gotContent, gotCustomer)
	}

	err = setup(env(map[string]string{"UNIPDF_LICENSE_PATH": filepath.Join(t.TempDir(), "nope.txt")}),
		nil, nil)
	if err == nil {
		t.Fatalf("missing key file accepted")
	}
}
