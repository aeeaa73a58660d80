package domain

// domain package contains the Domain Models and Interfaces for the Foodgram application.
//
// `domain/foodgram` package exposes the root object for the Foodgram application.
// Entrypoints of applications should instantiate the Database object and use it to interact with the domain.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and functions.
// For example, `domain/recipe.go` contains the `Recipe` entity.
//
// `domain/ENTITY` directory contains the "physical" representation of the domain entities in the RDB.
// `domain/ENTITY/db/interface.go` exposes the client interface to handle the domain entity in DB,
// `domain/ENTITY/db/postgres` implements it and `domain/ENTITY/db/mock` fakes it for tests.
//
// # Entities
//
// Core entities in the domain are:
//
// - `user`: Account of a person publishing or reading recipes.
// Users can follow each other; the "follow" relation drives the subscriptions feed.
//
// - `ingredient`: A food stuff with a measurement unit, loaded in bulk by operators.
// Recipes refer to ingredients with an amount per recipe.
//
// - `recipe`: A published recipe: name, image, text, cooking time and its ingredient lines.
// Users mark recipes as favorites and put them into their shopping cart;
// the cart can be aggregated into a shopping list.
// Every recipe owns a short link code for sharing.
//
// - `token`: Server-side record of issued API tokens.
// A token is honored only while its record exists, so logout is a delete.
