package graph

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// SDL is the schema text served to clients. Field and type names are
// part of the wire contract.
const SDL = `enum YesNo {
  YES
  NO
}

type Address {
  street: String!
  city: String!
}

type Person {
  name: String!
  phone: String
  address: Address!
  id: ID!
}

type User {
  username: String!
  friends: [Person!]!
  id: ID!
}

type Token {
  value: String!
}

type Query {
  personCount: Int!
  allPersons(phone: YesNo): [Person!]!
  findPerson(name: String!): Person
  me: User
}

type Mutation {
  addPerson(name: String!, phone: String, street: String!, city: String!): Person
  editNumber(name: String!, phone: String!): Person
  createUser(username: String!): User
  login(username: String!, password: String!): Token
  addAsFriend(name: String!): User
}
`

var schema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphql",
	Input: SDL,
})
