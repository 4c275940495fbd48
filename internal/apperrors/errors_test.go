package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	err := Conflict("Este horário já está reservado.")

	assert.Equal(t, http.StatusConflict, Status(err))
	assert.Equal(t, "Este horário já está reservado.", Message(err))
	assert.True(t, IsConflict(err))
}

func TestWrappedAppErrorIsStillResolved(t *testing.T) {
	err := fmt.Errorf("handler context: %w", NotFound("Empresa não encontrada."))

	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.Equal(t, "Empresa não encontrada.", Message(err))
}

func TestUnknownErrorsNeverLeak(t *testing.T) {
	err := errors.New("pq: connection refused at 10.0.0.3:5432")

	assert.Equal(t, http.StatusInternalServerError, Status(err))
	assert.Equal(t, "Erro interno do servidor.", Message(err))
}

func TestInternalKeepsCauseForLogsOnly(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := Internal("Erro interno ao processar agendamento.", cause)

	assert.Equal(t, "Erro interno ao processar agendamento.", Message(err))
	assert.ErrorIs(t, err, cause)
}
