package report

import "errors"

// ErrPDFUnavailable se devuelve cuando no hay generador de PDF configurado.
var ErrPDFUnavailable = errors.New("generación de PDF no disponible")
