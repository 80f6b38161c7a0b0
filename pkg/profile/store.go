package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DefaultPath is the profile location relative to the working directory.
const DefaultPath = "data/user_data.json"

// legacyInterestsKey is the name older profile files used for interests.
const legacyInterestsKey = "interests_and_background"

//nolint:gochecknoglobals // Formatting constants
var prettyOptions = &pretty.Options{
	Width:    80,
	Indent:   "  ",
	SortKeys: true,
}

// Store persists a single profile as a JSON document.
type Store struct {
	path string
}

// NewStore creates a store for the profile at path.
func NewStore(path string) (store *Store) {
	if path == "" {
		path = DefaultPath
	}
	store = &Store{path: path}
	return store
}

// Path returns the profile file location.
func (s *Store) Path() (path string) {
	path = s.path
	return path
}

// Exists reports whether a profile file has been written.
func (s *Store) Exists() (exists bool) {
	_, err := os.Stat(s.path)
	exists = err == nil
	return exists
}

// Load reads the profile, returning the empty skeleton when no file exists.
func (s *Store) Load() (p Profile, err error) {
	var data []byte
	data, err = os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			p = Empty()
			err = nil
			return p, err
		}
		err = errors.Wrapf(err, "failed to read profile: %s", s.path)
		return p, err
	}

	p, err = Unmarshal(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile: %s", s.path)
		return p, err
	}

	return p, err
}

// Save validates and then fully replaces the stored profile. Nothing is
// written when validation fails.
func (s *Store) Save(p Profile) (err error) {
	var data []byte
	data, err = Marshal(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create profile directory: %s", dir)
		return err
	}

	// Write to a sibling file and rename so readers never see a partial document.
	var tmp *os.File
	tmp, err = os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		err = errors.Wrap(err, "failed to create temporary profile file")
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrap(err, "failed to write temporary profile file")
		return err
	}

	err = os.Rename(tmpName, s.path)
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to replace profile: %s", s.path)
		return err
	}

	return err
}

// Marshal serializes a profile with sorted keys and two-space indentation.
func Marshal(p Profile) (data []byte, err error) {
	p.normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err = enc.Encode(p)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile")
		return data, err
	}

	err = ValidateJSON(buf.Bytes())
	if err != nil {
		return data, err
	}

	data = pretty.PrettyOptions(buf.Bytes(), prettyOptions)
	return data, err
}

// Unmarshal parses and validates a serialized profile.
func Unmarshal(data []byte) (p Profile, err error) {
	data, err = migrate(data)
	if err != nil {
		return p, err
	}

	err = ValidateJSON(data)
	if err != nil {
		return p, err
	}

	err = json.Unmarshal(data, &p)
	if err != nil {
		err = errors.Wrap(err, "failed to parse profile")
		return p, err
	}

	p.normalize()
	return p, err
}

// migrate rewrites keys used by older profile files.
func migrate(data []byte) (migrated []byte, err error) {
	migrated = data
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return migrated, err
	}

	legacy := gjson.GetBytes(data, legacyInterestsKey)
	if !legacy.Exists() {
		return migrated, err
	}

	if !gjson.GetBytes(data, "interests").Exists() {
		migrated, err = sjson.SetRawBytes(migrated, "interests", []byte(legacy.Raw))
		if err != nil {
			err = errors.Wrap(err, "failed to migrate interests")
			return migrated, err
		}
	}

	migrated, err = sjson.DeleteBytes(migrated, legacyInterestsKey)
	if err != nil {
		err = errors.Wrap(err, "failed to drop legacy interests key")
		return migrated, err
	}

	return migrated, err
}
