package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

var varianceTmpl = template.Must(template.New("variance").Parse(`<p>Hola {{.Recipient}},</p>
<p>El contenedor <strong>{{.Container}}</strong> registró un conteo fuera de los umbrales configurados.</p>
<table>
<tr><td>Usuario</td><td>{{.User}}</td></tr>
<tr><td>Fecha</td><td>{{.Time}}</td></tr>
<tr><td>Efectivo contado</td><td>{{.Cash}}</td></tr>
<tr><td>Objetivo</td><td>{{.Target}}</td></tr>
<tr><td>Varianza</td><td><strong>{{.Variance}}</strong></td></tr>
<tr><td>Umbral sobrante</td><td>{{.Pos}}</td></tr>
<tr><td>Umbral faltante</td><td>{{.Neg}}</td></tr>
{{if .Note}}<tr><td>Nota</td><td>{{.Note}}</td></tr>{{end}}
</table>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<p>Hola {{.Name}},</p>
<p>Tu contraseña fue restablecida. La nueva contraseña es: <strong>{{.Password}}</strong></p>
<p>Te recomendamos cambiarla después de iniciar sesión.</p>`))

func varianceSubject(a dto.VarianceAlert) string {
	return fmt.Sprintf("Alerta de varianza: %s (%s)", a.ContainerName, a.CompanyCode)
}

func renderVariance(f *money.Formatter, recipient *entity.User, a dto.VarianceAlert) (string, error) {
	var buf bytes.Buffer
	err := varianceTmpl.Execute(&buf, map[string]string{
		"Recipient": recipient.DisplayName(),
		"Container": a.ContainerName,
		"User":      a.UserName,
		"Time":      a.Count.Time,
		"Cash":      f.Format(a.Count.Cash),
		"Target":    f.Format(a.Target),
		"Variance":  f.Format(a.Variance),
		"Pos":       f.Format(a.PosThreshold),
		"Neg":       f.Format(a.NegThreshold),
		"Note":      a.Count.Note,
	})
	if err != nil {
		return "", fmt.Errorf("render variance: %w", err)
	}
	return buf.String(), nil
}

func renderReset(user *entity.User, password string) (string, error) {
	var buf bytes.Buffer
	if err := resetTmpl.Execute(&buf, map[string]string{"Name": user.DisplayName(), "Password": password}); err != nil {
		return "", fmt.Errorf("render reset: %w", err)
	}
	return buf.String(), nil
}
