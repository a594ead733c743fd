package config

type DatabaseConfig interface {
	GetDBServer() string
	GetDBPort() string
	GetDBName() string
	GetDBEncrypt() bool
	GetDBTrustServerCertificate() bool
}

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDBServer() string {
	return GetEnv("DB_SERVER", "localhost")
}

func (Database) GetDBPort() string {
	return GetEnv("DB_PORT", "1433")
}

func (Database) GetDBName() string {
	return GetEnv("DB_NAME", "July2025")
}

func (Database) GetDBEncrypt() bool {
	return GetEnv("DB_ENCRYPT", "true") == "true"
}

// GetDBTrustServerCertificate skips certificate verification on the SQL
// Server connection. On by default to match self-signed deployments.
func (Database) GetDBTrustServerCertificate() bool {
	return GetEnv("DB_TRUST_SERVER_CERTIFICATE", "true") == "true"
}
