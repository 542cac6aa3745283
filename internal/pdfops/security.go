package pdfops

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// encryptionKeyLength is the AES key length in bits.
const encryptionKeyLength = 256

// Lock encrypts the document with AES-256. The same password is used as user
// and owner password, so it is needed to open the document.
func (p *Processor) Lock(in []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("locking: %w", ErrEmptyPassword)
	}

	conf := p.passwordConfig(password)
	conf.EncryptUsingAES = true
	conf.EncryptKeyLength = encryptionKeyLength
	return p.run("locking", in, conf, api.Encrypt)
}

// Unlock removes encryption. Returns ErrWrongPassword if password does not
// open the document and ErrNotEncrypted if there is nothing to remove.
func (p *Processor) Unlock(in []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("unlocking: %w", ErrEmptyPassword)
	}
	return p.run("unlocking", in, p.passwordConfig(password), api.Decrypt)
}

// passwordConfig returns a configuration carrying password as user and owner password.
func (p *Processor) passwordConfig(password string) *model.Configuration {
	conf := p.config()
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}
