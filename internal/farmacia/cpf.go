package farmacia

import "strings"

// FormatCPF renders a CPF as 000.000.000-00. Anything that does not carry
// exactly eleven digits is returned unchanged.
func FormatCPF(cpf string) string {
	if cpf == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	d := b.String()
	if len(d) != 11 {
		return cpf
	}

	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}
