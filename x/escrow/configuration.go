package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
)

const packageName = "escrow"

// Configuration of the escrow extension.
type Configuration struct {
	// AssetProgram is the only asset program whose accounts can be
	// pledged.
	AssetProgram barter.Address `json:"asset_program"`
	// RecordRent is the storage deposit the initiator pays for the
	// escrow record. It is returned to the initiator when the record is
	// deleted.
	RecordRent uint64 `json:"record_rent"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return barter.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return barter.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	return errors.Field("AssetProgram", c.AssetProgram.Validate(), "invalid asset program")
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

// FromGenesis stores the configuration found under conf.escrow.
func (Initializer) FromGenesis(opts barter.Options, db barter.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
