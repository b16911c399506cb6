package clickhouse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type QueryBuilder struct {
	strings.Builder
}

func (builder *QueryBuilder) WriteInt(i int) {
	builder.WriteString(strconv.Itoa(i))
}

// Must only be called after calling ValidateIdentifier/ValidateIdentifiers on the given identifier.
func (builder *QueryBuilder) WriteIdentifier(identifier string) {
	builder.WriteRune('`')
	builder.WriteString(identifier)
	builder.WriteRune('`')
}

// Writes the given identifiers separated by commas.
func (builder *QueryBuilder) WriteIdentifierList(identifiers []string) {
	for i, identifier := range identifiers {
		if i != 0 {
			builder.WriteString(", ")
		}
		builder.WriteIdentifier(identifier)
	}
}

func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return errors.New("identifier is blank")
	}
	if strings.ContainsRune(identifier, '`') {
		return fmt.Errorf("'%s' contains `, which is incompatible with database", identifier)
	}

	return nil
}

func ValidateIdentifiers(identifiers ...string) error {
	for _, identifier := range identifiers {
		if err := ValidateIdentifier(identifier); err != nil {
			return err
		}
	}

	return nil
}
