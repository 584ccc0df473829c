package ast

// Field names the edge from a parent node to one of its children. Field
// names follow ESTree property names.
type Field uint8

const (
	FieldNone Field = iota
	FieldBody
	FieldID
	FieldParams
	FieldDeclarations
	FieldInit
	FieldTest
	FieldConsequent
	FieldAlternate
	FieldUpdate
	FieldLeft
	FieldRight
	FieldArgument
	FieldArguments
	FieldCallee
	FieldObject
	FieldProperty
	FieldKey
	FieldValue
	FieldExpression
	FieldExpressions
	FieldElements
	FieldProperties
	FieldSource
	FieldSpecifiers
	FieldImported
	FieldLocal
	FieldExported
	FieldDeclaration
	FieldLabel
	FieldBlock
	FieldHandler
	FieldFinalizer
	FieldParam
	FieldCases
	FieldDiscriminant
	FieldSuperClass
	FieldDecorators
	FieldTypeAnnotation
	FieldTypeParameters
	FieldTypeArguments
	FieldReturnType
	FieldQuasis
	FieldTag
	FieldQuasi
	FieldMeta
	FieldOpeningElement
	FieldClosingElement
	FieldChildren
	FieldAttributes
	FieldName
	FieldNamespace
	FieldConstraint
	FieldDefault
	FieldMembers
	FieldExtends
	FieldImplements
	FieldTypes
	FieldElementType
	FieldElementTypes
	FieldObjectType
	FieldIndexType
	FieldCheckType
	FieldExtendsType
	FieldTrueType
	FieldFalseType
	FieldTypeParameter
	FieldNameType
	FieldParameterName
	FieldExprName
	FieldTypeName
	FieldQualifier
	FieldInitializer
	FieldModuleReference
	FieldPattern
	FieldHashbang
	FieldDirectives
	FieldParameters
	FieldLiteral
	FieldOptions
	FieldSuperTypeArgs

	fieldCount
)

var fieldNames = map[Field]string{
	FieldNone:             "",
	FieldBody:             "body",
	FieldID:               "id",
	FieldParams:           "params",
	FieldDeclarations:     "declarations",
	FieldInit:             "init",
	FieldTest:             "test",
	FieldConsequent:       "consequent",
	FieldAlternate:        "alternate",
	FieldUpdate:           "update",
	FieldLeft:             "left",
	FieldRight:            "right",
	FieldArgument:         "argument",
	FieldArguments:        "arguments",
	FieldCallee:           "callee",
	FieldObject:           "object",
	FieldProperty:         "property",
	FieldKey:              "key",
	FieldValue:            "value",
	FieldExpression:       "expression",
	FieldExpressions:      "expressions",
	FieldElements:         "elements",
	FieldProperties:       "properties",
	FieldSource:           "source",
	FieldSpecifiers:       "specifiers",
	FieldImported:         "imported",
	FieldLocal:            "local",
	FieldExported:         "exported",
	FieldDeclaration:      "declaration",
	FieldLabel:            "label",
	FieldBlock:            "block",
	FieldHandler:          "handler",
	FieldFinalizer:        "finalizer",
	FieldParam:            "param",
	FieldCases:            "cases",
	FieldDiscriminant:     "discriminant",
	FieldSuperClass:       "superClass",
	FieldDecorators:       "decorators",
	FieldTypeAnnotation:   "typeAnnotation",
	FieldTypeParameters:   "typeParameters",
	FieldTypeArguments:    "typeArguments",
	FieldReturnType:       "returnType",
	FieldQuasis:           "quasis",
	FieldTag:              "tag",
	FieldQuasi:            "quasi",
	FieldMeta:             "meta",
	FieldOpeningElement:   "openingElement",
	FieldClosingElement:   "closingElement",
	FieldChildren:         "children",
	FieldAttributes:       "attributes",
	FieldName:             "name",
	FieldNamespace:        "namespace",
	FieldConstraint:       "constraint",
	FieldDefault:          "default",
	FieldMembers:          "members",
	FieldExtends:          "extends",
	FieldImplements:       "implements",
	FieldTypes:            "types",
	FieldElementType:      "elementType",
	FieldElementTypes:     "elementTypes",
	FieldObjectType:       "objectType",
	FieldIndexType:        "indexType",
	FieldCheckType:        "checkType",
	FieldExtendsType:      "extendsType",
	FieldTrueType:         "trueType",
	FieldFalseType:        "falseType",
	FieldTypeParameter:    "typeParameter",
	FieldNameType:         "nameType",
	FieldParameterName:    "parameterName",
	FieldExprName:         "exprName",
	FieldTypeName:         "typeName",
	FieldQualifier:        "qualifier",
	FieldInitializer:      "initializer",
	FieldModuleReference:  "moduleReference",
	FieldPattern:          "pattern",
	FieldHashbang:         "hashbang",
	FieldDirectives:       "directives",
	FieldParameters:       "parameters",
	FieldLiteral:          "literal",
	FieldOptions:          "options",
	FieldSuperTypeArgs:    "superTypeArguments",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fieldNames))
	for f, name := range fieldNames {
		if f != FieldNone {
			m[name] = f
		}
	}
	return m
}()

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseField returns the Field with the given ESTree property name.
func ParseField(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}
