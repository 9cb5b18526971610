package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
)

const packageName = "token"

// Configuration of the token extension.
type Configuration struct {
	// AccountRent is the storage deposit charged for every created
	// account or mint.
	AccountRent uint64 `json:"account_rent"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return barter.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, c)
}

// Validate accepts any rent, including none.
func (c *Configuration) Validate() error {
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConf stores the configuration of this extension.
func SaveConf(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ barter.Initializer = Initializer{}

// FromGenesis stores the configuration found under conf.token.
func (Initializer) FromGenesis(opts barter.Options, db barter.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
