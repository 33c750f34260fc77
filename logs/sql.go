package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  day string not null,
  id integer not null,
  time datetime,
  pits int,
  seeds int,
  south varchar,
  north varchar,
  result string,
  winner string,
  moves int
)`

const createPlayerTable = `
CREATE VIEW IF NOT EXISTS player_games (
  day, id, player, opponent, side, win, result, pits, moves
) AS
SELECT day, id, north, south, 'north',
       CASE winner WHEN 'south' THEN 'lose' WHEN 'north' THEN 'win' ELSE 'tie' END,
       result, pits, moves
 FROM games
UNION
SELECT day, id, south, north, 'south',
       CASE winner WHEN 'south' THEN 'win' WHEN 'north' THEN 'lose' ELSE 'tie' END,
       result, pits, moves
 FROM games
`

const insertStmt = `
INSERT INTO games (day, id, time, pits, seeds, south, north, result, winner, moves)
VALUES (?,?,?,?,?,?,?,?,?,?)
`
