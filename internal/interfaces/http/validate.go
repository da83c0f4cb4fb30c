package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida para la validación de forma de los cuerpos de
// petición (ids presentes y con formato UUID, campos obligatorios). Las reglas
// de negocio no viven aquí: las decide el caso de uso.
var validate = validator.New()
