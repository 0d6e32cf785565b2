package domain

import "strings"

// Standard namespaces
const (
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD  = "http://www.w3.org/2001/XMLSchema#"
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"
	NamespaceOBO  = "http://purl.obolibrary.org/obo/"
)

// LDTab datatype markers
const (
	DatatypeIRI  = "_IRI"
	DatatypeJSON = "_JSON"
	// MetaAxiom marks annotation entries that annotate the whole axiom
	MetaAxiom = "owl:Axiom"
)

// RDF and RDFS terms
const (
	RDFType       = "rdf:type"
	RDFFirst      = "rdf:first"
	RDFRest       = "rdf:rest"
	RDFNil        = "rdf:nil"
	RDFLangString = "rdf:langString"
	RDFPlain      = "rdf:PlainLiteral"

	RDFSSubClassOf    = "rdfs:subClassOf"
	RDFSSubPropertyOf = "rdfs:subPropertyOf"
	RDFSDomain        = "rdfs:domain"
	RDFSRange         = "rdfs:range"
	RDFSLabel         = "rdfs:label"
	RDFSComment       = "rdfs:comment"
	RDFSSeeAlso       = "rdfs:seeAlso"
	RDFSIsDefinedBy   = "rdfs:isDefinedBy"
	RDFSDatatype      = "rdfs:Datatype"
	RDFSLiteral       = "rdfs:Literal"
)

// OWL terms
const (
	OWLClass                     = "owl:Class"
	OWLThing                     = "owl:Thing"
	OWLNothing                   = "owl:Nothing"
	OWLRestriction               = "owl:Restriction"
	OWLObjectProperty            = "owl:ObjectProperty"
	OWLDatatypeProperty          = "owl:DatatypeProperty"
	OWLAnnotationProperty        = "owl:AnnotationProperty"
	OWLNamedIndividual           = "owl:NamedIndividual"
	OWLFunctionalProperty        = "owl:FunctionalProperty"
	OWLInverseFunctionalProperty = "owl:InverseFunctionalProperty"
	OWLTransitiveProperty        = "owl:TransitiveProperty"
	OWLSymmetricProperty         = "owl:SymmetricProperty"
	OWLAsymmetricProperty        = "owl:AsymmetricProperty"
	OWLReflexiveProperty         = "owl:ReflexiveProperty"
	OWLIrreflexiveProperty       = "owl:IrreflexiveProperty"

	OWLEquivalentClass      = "owl:equivalentClass"
	OWLDisjointWith         = "owl:disjointWith"
	OWLDisjointUnionOf      = "owl:disjointUnionOf"
	OWLEquivalentProperty   = "owl:equivalentProperty"
	OWLPropertyDisjointWith = "owl:propertyDisjointWith"
	OWLInverseOf            = "owl:inverseOf"
	OWLPropertyChainAxiom   = "owl:propertyChainAxiom"
	OWLSameAs               = "owl:sameAs"
	OWLDifferentFrom        = "owl:differentFrom"
	OWLDeprecated           = "owl:deprecated"
	OWLAnnotatedSource      = "owl:annotatedSource"
	OWLAnnotatedProperty    = "owl:annotatedProperty"
	OWLAnnotatedTarget      = "owl:annotatedTarget"
	OWLVersionInfo          = "owl:versionInfo"

	OWLOnProperty              = "owl:onProperty"
	OWLSomeValuesFrom          = "owl:someValuesFrom"
	OWLAllValuesFrom           = "owl:allValuesFrom"
	OWLHasValue                = "owl:hasValue"
	OWLHasSelf                 = "owl:hasSelf"
	OWLMinCardinality          = "owl:minCardinality"
	OWLMaxCardinality          = "owl:maxCardinality"
	OWLCardinality             = "owl:cardinality"
	OWLMinQualifiedCardinality = "owl:minQualifiedCardinality"
	OWLMaxQualifiedCardinality = "owl:maxQualifiedCardinality"
	OWLQualifiedCardinality    = "owl:qualifiedCardinality"
	OWLOnClass                 = "owl:onClass"
	OWLOnDataRange             = "owl:onDataRange"
	OWLIntersectionOf          = "owl:intersectionOf"
	OWLUnionOf                 = "owl:unionOf"
	OWLComplementOf            = "owl:complementOf"
	OWLOneOf                   = "owl:oneOf"
	OWLDatatypeComplementOf    = "owl:datatypeComplementOf"
	OWLOnDatatype              = "owl:onDatatype"
	OWLWithRestrictions        = "owl:withRestrictions"
)

// XSD terms
const (
	XSDString             = "xsd:string"
	XSDBoolean            = "xsd:boolean"
	XSDNonNegativeInteger = "xsd:nonNegativeInteger"
)

// Other annotation vocabularies
const (
	SKOSPrefLabel  = "skos:prefLabel"
	SKOSAltLabel   = "skos:altLabel"
	SKOSDefinition = "skos:definition"
	OBODefinition  = "obo:IAO_0000115"
)

// DeclarationTags lists the rdf:type objects that declare an entity
var DeclarationTags = []string{
	OWLClass,
	OWLObjectProperty,
	OWLDatatypeProperty,
	OWLAnnotationProperty,
	OWLNamedIndividual,
	RDFSDatatype,
}

// IsDeclarationTag reports whether tag is one of DeclarationTags
func IsDeclarationTag(tag string) bool {
	for _, t := range DeclarationTags {
		if t == tag {
			return true
		}
	}
	return false
}

var builtinDatatypes = map[string]bool{
	RDFSLiteral:               true,
	RDFPlain:                  true,
	RDFLangString:             true,
	"rdf:XMLLiteral":          true,
	"owl:real":                true,
	"owl:rational":            true,
	NamespaceRDFS + "Literal": true,
}

// IsBuiltinDatatype reports whether iri names a datatype of the OWL 2
// datatype map
func IsBuiltinDatatype(iri string) bool {
	return strings.HasPrefix(iri, "xsd:") || strings.HasPrefix(iri, NamespaceXSD) || builtinDatatypes[iri]
}

// IsBuiltinClass reports whether iri is owl:Thing or owl:Nothing
func IsBuiltinClass(iri string) bool {
	switch iri {
	case OWLThing, OWLNothing, NamespaceOWL + "Thing", NamespaceOWL + "Nothing":
		return true
	default:
		return false
	}
}

// IsBlankNode returns true for blank node identifiers such as "_:b0"
func IsBlankNode(id string) bool {
	return strings.HasPrefix(id, "_:")
}
