package registry

//go:generate go run github.com/dmarkham/enumer -type Engine -trimprefix Engine -transform lower -yaml -output engine.gen.go

// Engine identifies the database engine a registry entry belongs to.
type Engine int

const (
	EnginePostgreSQL Engine = iota
	EngineMySQL
	EngineMongoDB
	EngineRedis
)
