// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"math/big"

	"go.mozilla.org/pkcs7"
)

// AttrPKCS7Signature is a non-standard, vendor-prefixed attribute name some
// build pipelines attach to a class file to carry a detached PKCS#7
// signature over its bytes, the same way a JAR carries a signature file
// alongside its entries. It is never produced by javac and is not part of
// JVMS 4.7; a reader that doesn't care about code signing can safely leave
// it as a RawAttribute.
const AttrPKCS7Signature = "X-PKCS7Signature"

// SignerInfo is the subset of a PKCS#7 SignerInfo this reader surfaces once
// an X-PKCS7Signature attribute is present and its signature is well
// formed. It does not verify trust; it only decodes the structure.
type SignerInfo struct {
	SerialNumber *big.Int
	IssuerName   []byte
}

// ParseSignerInfo decodes raw as a PKCS#7 signed-data structure, returning
// its first signer. It returns (nil, nil) when raw isn't the PKCS7 signature
// attribute at all, so callers can call it unconditionally over a class
// file's attribute list.
func ParseSignerInfo(raw RawAttribute) (*SignerInfo, error) {
	if raw.Name != AttrPKCS7Signature {
		return nil, nil
	}
	p7, err := pkcs7.Parse(raw.Data)
	if err != nil {
		return nil, err
	}
	if len(p7.Signers) == 0 {
		return nil, nil
	}
	signer := p7.Signers[0]
	return &SignerInfo{
		SerialNumber: signer.IssuerAndSerialNumber.SerialNumber,
		IssuerName:   signer.IssuerAndSerialNumber.IssuerName.FullBytes,
	}, nil
}

// findSignerInfo scans a class's attributes for AttrPKCS7Signature and
// decodes it, returning nil when absent.
func findSignerInfo(attrs []Attribute) (*SignerInfo, error) {
	for _, a := range attrs {
		raw, ok := a.(RawAttribute)
		if !ok {
			continue
		}
		info, err := ParseSignerInfo(raw)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}
