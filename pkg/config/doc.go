// Package config provides the run configuration for the provisioning tool.
//
// Configuration is read once from a YAML file and the environment, validated,
// and then passed by value into every component that needs it. There is
// deliberately no global configuration object and no reload mechanism: a
// configuration change means a new build of all artifacts.
//
// # Configuration File
//
// The default location is /etc/pgprovision/pgprov.yml:
//
//	enable: true
//	state_dir: /var/lib/pgprovision
//	run_dir: /run/postgresql
//	data_dir: /var/lib/postgresql/16
//	registry: /etc/pgprovision/databases.yml
//	admin_role: postgres
//	target: nixcloud-postgresql-ready.target
//
// # Environment Variables
//
//   - PGPROV_CONFIG_PATH: Alternate config file location
//   - PGPROV_ENABLE: Override the enable flag
//   - PGPROV_STATE_DIR, PGPROV_RUN_DIR, PGPROV_DATA_DIR: Directory overrides
//   - PGPROV_REGISTRY: Registry file override
//   - PGPROV_ADMIN_ROLE: Administrative role override
//   - PGPROV_LOG_LEVEL: Set to "debug" for SQL query logging
package config
