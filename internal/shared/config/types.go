package config

type Config struct {
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver" envPrefix:"HTTP_"`
	Log        LogConfig        `yaml:"log" mapstructure:"log" envPrefix:"LOG_"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage" envPrefix:"STORAGE_"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql" envPrefix:"MYSQL_"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb" envPrefix:"MONGODB_"`
	SQLite     SQLiteConfig     `yaml:"sqlite" mapstructure:"sqlite" envPrefix:"SQLITE_"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic" envPrefix:"LOGIC_"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret" env:"JWT_SECRET"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host" env:"HOST"`
	Port int    `yaml:"port" mapstructure:"port" env:"PORT"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir" env:"FILE_DIR"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size" env:"MAX_SIZE"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age" env:"MAX_AGE"` // 天
	Compress   bool   `yaml:"compress" mapstructure:"compress" env:"COMPRESS"`
	Level      string `yaml:"level" mapstructure:"level" env:"LEVEL"` // debug/info/warn/error
	Dev        bool   `yaml:"dev" mapstructure:"dev" env:"DEV"`
}

// StorageConfig 选择 momento 的存储后端：memory/file/sqlite/mysql/mongodb。
type StorageConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver" env:"DRIVER"`
	Dir    string `yaml:"dir" mapstructure:"dir" env:"DIR"` // file 驱动的目录
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host" env:"HOST"`
	Port     int    `yaml:"port" mapstructure:"port" env:"PORT"`
	User     string `yaml:"user" mapstructure:"user" env:"USER"`
	Password string `yaml:"password" mapstructure:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" mapstructure:"dbname" env:"DBNAME"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle" env:"MAX_IDLE"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn" env:"MAX_CONN"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri" env:"URI"`
	Database        string `yaml:"database" mapstructure:"database" env:"DATABASE"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s" env:"CONNECT_TIMEOUT_S"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path" env:"PATH"`
}

// LogicConfig 是世界生成和玩法参数。
type LogicConfig struct {
	TileDegrees      float64 `yaml:"tile_degrees" mapstructure:"tile_degrees" env:"TILE_DEGREES"`
	NeighborhoodSize int     `yaml:"neighborhood_size" mapstructure:"neighborhood_size" env:"NEIGHBORHOOD_SIZE"`
	PitSpawnRate     float64 `yaml:"pit_spawn_rate" mapstructure:"pit_spawn_rate" env:"PIT_SPAWN_RATE"`
	WorldSeed        string  `yaml:"world_seed" mapstructure:"world_seed" env:"WORLD_SEED"`
	StartLat         float64 `yaml:"start_lat" mapstructure:"start_lat" env:"START_LAT"`
	StartLng         float64 `yaml:"start_lng" mapstructure:"start_lng" env:"START_LNG"`
	FlushEveryMS     int     `yaml:"flush_every_ms" mapstructure:"flush_every_ms" env:"FLUSH_EVERY_MS"`
	AskTimeoutMS     int     `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms" env:"ASK_TIMEOUT_MS"`
	SnowflakeNode    int64   `yaml:"snowflake_node" mapstructure:"snowflake_node" env:"SNOWFLAKE_NODE"`
}
