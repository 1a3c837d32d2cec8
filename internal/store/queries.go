package store

// Configuration queries
const (
	queryGetConfiguration = `
		SELECT api_key, municipality_codes, is_active, created_at, updated_at
		FROM configuration WHERE id = 1`

	queryUpsertConfiguration = `
		INSERT INTO configuration (id, api_key, municipality_codes, is_active, updated_at)
		VALUES (1, ?, ?, ?, now())
		ON CONFLICT (id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			municipality_codes = EXCLUDED.municipality_codes,
			is_active = EXCLUDED.is_active,
			updated_at = now()`

	queryDeleteConfiguration = `DELETE FROM configuration WHERE id = 1`
)

// Municipality queries
const (
	queryUpsertMunicipality = `
		INSERT INTO municipalities (code, name)
		VALUES (?, ?)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`
)

// Property queries
const (
	queryInsertProperty = `
		INSERT INTO properties (
			id, collection, municipality_code, matricule, lot_number, civic_number, street_name,
			postal_code, owner_first_name, owner_last_name, assessed_value, land_area, year_built
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			collection = EXCLUDED.collection,
			municipality_code = EXCLUDED.municipality_code,
			matricule = EXCLUDED.matricule,
			lot_number = EXCLUDED.lot_number,
			civic_number = EXCLUDED.civic_number,
			street_name = EXCLUDED.street_name,
			postal_code = EXCLUDED.postal_code,
			owner_first_name = EXCLUDED.owner_first_name,
			owner_last_name = EXCLUDED.owner_last_name,
			assessed_value = EXCLUDED.assessed_value,
			land_area = EXCLUDED.land_area,
			year_built = EXCLUDED.year_built`

	queryListCollections = `
		SELECT DISTINCT collection FROM properties
		WHERE collection <> ''
		ORDER BY collection`
)
