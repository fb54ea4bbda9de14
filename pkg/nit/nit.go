// Package nit calcula y valida el dígito de verificación del NIT colombiano
// (módulo 11, Orden Administrativa 4 de 1989). El back office lo usa para
// rechazar NITs mal digitados al registrar clientes con facturación a nombre
// de empresa.
package nit

import (
	"fmt"
	"unicode"
)

// pesos aplicados a los 9 primeros dígitos del NIT, de izquierda a derecha
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Validate verifica que el NIT traiga un dígito de verificación correcto.
// Acepta "123456789-1", "123.456.789-1" o "1234567891"; los separadores se
// ignoran.
func Validate(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("el NIT debe tener 9 dígitos más el de verificación, se encontraron %d", len(digits))
	}
	expected := checkDigit(digits[:9])
	if digits[9] != expected {
		return fmt.Errorf("dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// CheckDigit calcula el dígito de verificación para los 9 primeros dígitos
// del NIT.
func CheckDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	return checkDigit(digits[:9]), nil
}

func checkDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder)
	}
	return byte('0' + (11 - remainder))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
