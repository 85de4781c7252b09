package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "failed to create directory for %s", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to write %s", name)
	return path
}

// Chdir changes the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

// IsolateGlobalConfig points XDG_CONFIG_HOME at an empty temp dir so a
// developer's global configuration does not leak into tests.
func IsolateGlobalConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("BPSCHEMA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

// UserCatalogYAML is a catalog with a User model owning many Addresses and
// matching serializers.
const UserCatalogYAML = `models:
  User:
    columns:
      id: {type: integer}
      first_name: {type: string, nullable: true}
      last_name: {type: string, nullable: true}
      email: {type: string}
      created_at: {type: datetime}
    associations:
      addresses: {collection: true, model: Address}
  Address:
    columns:
      id: {type: integer}
      address: {type: string}

serializers:
  AddressBlueprint:
    model: Address
    views:
      default:
        fields:
          - name: id
          - name: address
  UserBlueprint:
    model: User
    views:
      default:
        fields:
          - name: id
          - name: first_name
          - name: last_name
          - name: email
          - name: created_at
          - name: full_name
            options:
              type: [string, "null"]
              description: The concatenated first and last name of the user
        associations:
          - name: addresses
            options: {blueprint: AddressBlueprint}
`

// UserCatalogTOML is UserCatalogYAML in TOML syntax.
const UserCatalogTOML = `[models.User.columns]
id = { type = "integer" }
first_name = { type = "string", nullable = true }
last_name = { type = "string", nullable = true }
email = { type = "string" }
created_at = { type = "datetime" }

[models.User.associations]
addresses = { collection = true, model = "Address" }

[models.Address.columns]
id = { type = "integer" }
address = { type = "string" }

[serializers.AddressBlueprint]
model = "Address"

[[serializers.AddressBlueprint.views.default.fields]]
name = "id"

[[serializers.AddressBlueprint.views.default.fields]]
name = "address"

[serializers.UserBlueprint]
model = "User"

[[serializers.UserBlueprint.views.default.fields]]
name = "id"

[[serializers.UserBlueprint.views.default.fields]]
name = "first_name"

[[serializers.UserBlueprint.views.default.fields]]
name = "last_name"

[[serializers.UserBlueprint.views.default.fields]]
name = "email"

[[serializers.UserBlueprint.views.default.fields]]
name = "created_at"

[[serializers.UserBlueprint.views.default.fields]]
name = "full_name"
options = { type = ["string", "null"], description = "The concatenated first and last name of the user" }

[[serializers.UserBlueprint.views.default.associations]]
name = "addresses"
options = { blueprint = "AddressBlueprint" }
`
