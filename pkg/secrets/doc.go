// Package secrets encrypts small values at rest.
//
// A Cipher is created from a 32-byte master key and a purpose string. The
// purpose is mixed into the key with HKDF-SHA256, so values sealed for one
// purpose fail to open under another.
//
//	key, err := secrets.ParseKey(os.Getenv("OCL_SECRETS_KEY"))
//	c, err := secrets.NewCipher(key, "subscription.token")
//	sealed, err := c.Seal("api-token")
//	plain, err := c.Open(sealed)
package secrets
