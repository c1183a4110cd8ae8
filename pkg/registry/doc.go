// Package registry provides the declarative multi-engine database registry.
//
// The registry is a YAML mapping from database name to entry. Each entry
// names its engine, the owning role, optional additional owners, and an
// optional post-create script:
//
//	app:
//	  engine: postgresql
//	  owner: app_role
//	  additional_owners: [app_admin]
//	  post_create: |
//	    GRANT ALL ON SCHEMA public TO app_admin;
//
// Entries are validated when the registry is parsed; a malformed entry
// rejects the whole build before any provisioning task is generated from it.
// FilterEngine selects the slice of the registry a single engine's
// provisioning subsystem operates on.
package registry
