package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKindRequiredFields(t *testing.T) {
	assert.Equal(t, []string{DocumentFieldNumber, DocumentFieldDate}, DocumentKindNotaFiscal.RequiredFields())
	assert.Equal(t, []string{DocumentFieldDate}, DocumentKindRecibo.RequiredFields())
	assert.Equal(t, []string{DocumentFieldContract, DocumentFieldDate}, DocumentKindFatura.RequiredFields())
	assert.Equal(t, []string{DocumentFieldDate}, DocumentKindBoleto.RequiredFields())
	assert.Nil(t, DocumentKindNone.RequiredFields())
}

func TestDocumentKindValid(t *testing.T) {
	assert.True(t, DocumentKindNotaFiscal.Valid())
	assert.True(t, DocumentKindNone.Valid())
	assert.False(t, DocumentKind("cheque").Valid())
}

func TestPaymentDocumentKind(t *testing.T) {
	nf := "NF-1"
	reciboID := uint(1)
	faturaID := uint(2)
	boletoID := uint(3)

	assert.Equal(t, DocumentKindNone, (&Payment{}).DocumentKind())
	assert.Equal(t, DocumentKindNotaFiscal, (&Payment{NotaFiscalNumber: &nf}).DocumentKind())
	assert.Equal(t, DocumentKindRecibo, (&Payment{ReciboID: &reciboID}).DocumentKind())
	assert.Equal(t, DocumentKindFatura, (&Payment{FaturaID: &faturaID}).DocumentKind())
	assert.Equal(t, DocumentKindBoleto, (&Payment{BoletoID: &boletoID}).DocumentKind())

	assert.Equal(t, "Nota Fiscal", DocumentKindNotaFiscal.Label())
	assert.Equal(t, "Outro", DocumentKindNone.Label())
}
