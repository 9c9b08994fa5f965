//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// Vendor identifies the SQL dialect a connector renders for.
type Vendor = string

const (
	PostgreSQL Vendor = "postgresql"
	MySQL      Vendor = "mysql"
	SQLite     Vendor = "sqlite"
	Oracle     Vendor = "oracle"
)

// Vendors returns every supported vendor in a stable order.
func Vendors() []Vendor {
	return []Vendor{PostgreSQL, MySQL, SQLite, Oracle}
}

// IsSupportedVendor reports whether v is one of the supported vendors.
func IsSupportedVendor(v Vendor) bool {
	for _, known := range Vendors() {
		if v == known {
			return true
		}
	}
	return false
}
