package mailsyntax

import (
	"go.uber.org/zap"
)

// // // // // // // // // //

type ConfigCacheObj struct {
	ShardAbs     byte   // must be 1..8
	ShardMaxSize uint32 // hard limit per shard, a full shard evicts one entry per insert
	PruneEveryN  uint32 // every N writes a shard is trimmed to 3/4 of ShardMaxSize
}

type ConfigObj struct {
	NoCache bool
	Metrics bool
	Cache   ConfigCacheObj

	IDN    IdnConverter
	IP     IPParser
	Logger *zap.Logger
}

// //

var DefaultConfig = &ConfigObj{
	NoCache: true,
	Metrics: false,
	Cache: ConfigCacheObj{
		ShardAbs:     4,
		ShardMaxSize: 10_000,
		PruneEveryN:  1_000,
	},
}

func (c *ConfigObj) fillDefaults() {
	if c.IDN == nil {
		c.IDN = newIdnaConverter()
	}
	if c.IP == nil {
		c.IP = netipParserObj{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.Cache.ShardAbs == 0 || c.Cache.ShardAbs > maxShardAbs {
		c.Cache.ShardAbs = DefaultConfig.Cache.ShardAbs
	}
	if c.Cache.ShardMaxSize == 0 {
		c.Cache.ShardMaxSize = DefaultConfig.Cache.ShardMaxSize
	}
	if c.Cache.PruneEveryN == 0 {
		c.Cache.PruneEveryN = DefaultConfig.Cache.PruneEveryN
	}
}
