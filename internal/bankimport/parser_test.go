package bankimport_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jpcarvalho/clubledger/internal/bankimport"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Conta(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;CLUBE DESPORTIVO
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR
Saldo disponível;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;ALUGUER PAVILHAO;-588,74;48.825,46
09-01-2026;09-01-2026;TRF MENSALIDADE J SILVA;15,00;48.840,46
`

	p := bankimport.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, date(2026, 1, 30), params[0].Date)
	assert.Equal(t, "ALUGUER PAVILHAO", params[0].Description)
	assert.Equal(t, "ALUGUER PAVILHAO", params[0].RawDescription)
	assert.Equal(t, int64(58874), params[0].Amount)
	assert.Equal(t, transaction.TypeDespesa, params[0].Type)
	assert.Equal(t, transaction.StatusPaga, params[0].Status)
	assert.Equal(t, transaction.MethodTransferencia, params[0].PaymentMethod)

	assert.Equal(t, date(2026, 1, 9), params[1].Date)
	assert.Equal(t, int64(1500), params[1].Amount)
	assert.Equal(t, transaction.TypeReceita, params[1].Type)
}

func TestParser_Cartao(t *testing.T) {
	csv := `Movimentos cartão - 28-02-2026

Data;Descrição;Débito;Crédito
15-02-2026;EQUIPAMENTO DESPORTIVO;120,00;
20-02-2026;ESTORNO COMPRA;;35,50
`

	p := bankimport.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(12000), params[0].Amount)
	assert.Equal(t, transaction.TypeDespesa, params[0].Type)

	assert.Equal(t, int64(3550), params[1].Amount)
	assert.Equal(t, transaction.TypeReceita, params[1].Type)
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Data mov.;Data-valor;Descrição;Montante;Saldo
30-01-2026;30-01-2026;QUOTA SOCIO;15,00;100,00

Saldo contabilístico;1.000,00 EUR
`

	p := bankimport.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
}

func TestParser_UnknownLayout(t *testing.T) {
	csv := `Col1;Col2
a;b
`

	p := bankimport.NewParser()

	_, err := p.Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "layout not recognized")
}

func TestParser_Windows1252Input(t *testing.T) {
	csv := "Data mov.;Data-valor;Descrição;Montante;Saldo\n30-01-2026;30-01-2026;TRANSFERÊNCIA SÓCIO;15,00;100,00\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	p := bankimport.NewParser()
	params, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "TRANSFERÊNCIA SÓCIO", params[0].Description)
}
