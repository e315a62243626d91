package store

import "golang.org/x/crypto/bcrypt"

// The original stored passwords in cleartext. The contract is preserved
// (CreateUser takes the plain password, FindUserByCredentials matches it)
// but at rest only a bcrypt hash is kept. The remote API backend delegates
// hashing to the server, which uses these same helpers.

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
