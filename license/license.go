// Package license initializes the unipdf license from the environment.
// unipdf refuses extraction and writing without one, so the CLI and examples
// call Setup before building a pipeline.
package license

import (
	"fmt"
	"os"

	unilicense "github.com/unidoc/unipdf/v3/common/license"
)

// Setup loads the unipdf license: a metered API key from
// UNIDOC_LICENSE_API_KEY, or an offline key file from UNIPDF_LICENSE_PATH
// together with UNIPDF_CUSTOMER_NAME. Returns an error when neither is set.
func Setup() error {
	return setup(os.Getenv, unilicense.SetMeteredKey, unilicense.SetLicenseKey)
}

func setup(getenv func(string) string, setMetered func(string) error, setKey func(content, customer string) error) error {
	if key := getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := setMetered(key); err != nil {
			return fmt.Errorf("unipdf metered license: %w", err)
		}
		return nil
	}
	if path := getenv("UNIPDF_LICENSE_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read unipdf license %q: %w", path, err)
		}
		if err := setKey(string(data), getenv("UNIPDF_CUSTOMER_NAME")); err != nil {
			return fmt.Errorf("unipdf license: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unipdf license required: set UNIDOC_LICENSE_API_KEY or UNIPDF_LICENSE_PATH")
}
